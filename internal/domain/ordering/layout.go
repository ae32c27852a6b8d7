package ordering

// BlockKind identifies what a positioned block on a page holds
type BlockKind string

const (
	BlockTitle    BlockKind = "title"
	BlockDate     BlockKind = "date"
	BlockNote     BlockKind = "note"
	BlockCategory BlockKind = "category"
	BlockLine     BlockKind = "line"
)

// DocumentTitle is printed at the top of the first page
const DocumentTitle = "Order List"

// Layout holds page geometry in millimetres. Y grows downwards from the page top.
type Layout struct {
	PageHeight      float64
	Top             float64
	Margin          float64
	Indent          float64
	TitleAdvance    float64
	DateAdvance     float64
	NoteAdvance     float64
	LineHeight      float64
	CategoryHeight  float64
	CategorySpacing float64
}

// DefaultLayout returns the geometry of the printed order list on A4
func DefaultLayout() Layout {
	return Layout{
		PageHeight:      280,
		Top:             10,
		Margin:          10,
		Indent:          5,
		TitleAdvance:    7,
		DateAdvance:     7,
		NoteAdvance:     10,
		LineHeight:      7,
		CategoryHeight:  8,
		CategorySpacing: 5,
	}
}

// Block is a line of text at a fixed position
type Block struct {
	Kind BlockKind `json:"kind"`
	Text string    `json:"text"`
	X    float64   `json:"x"`
	Y    float64   `json:"y"`
	// Continued marks a category heading repeated at the top of a new page
	Continued bool `json:"continued,omitempty"`
}

// Page is one printed page
type Page struct {
	Number int     `json:"number"`
	Blocks []Block `json:"blocks"`
}

// Paginate lays the sheet out on pages. The heading (title, date, optional
// note) opens the first page. Each group prints its category heading, then
// its lines; when the next line would cross PageHeight a new page starts
// and the category heading is printed again before the line.
func Paginate(sheet *OrderSheet, layout Layout) []Page {
	p := &paginator{layout: layout, y: layout.Top}
	p.newPage()

	p.add(Block{Kind: BlockTitle, Text: DocumentTitle, X: layout.Margin}, layout.TitleAdvance)
	p.add(Block{Kind: BlockDate, Text: "Date: " + sheet.DateString(), X: layout.Margin}, layout.DateAdvance)
	if sheet.FinalNote != "" {
		p.add(Block{Kind: BlockNote, Text: "Note: " + sheet.FinalNote, X: layout.Margin}, layout.NoteAdvance)
	}

	for _, group := range sheet.Groups {
		heading := Block{Kind: BlockCategory, Text: group.Title, X: layout.Margin}
		p.add(heading, layout.CategoryHeight)
		for _, line := range group.Lines {
			if p.y+layout.LineHeight > layout.PageHeight {
				p.newPage()
				p.y = layout.Top
				cont := heading
				cont.Continued = true
				p.add(cont, layout.CategoryHeight)
			}
			p.add(Block{Kind: BlockLine, Text: line.Text(), X: layout.Margin + layout.Indent}, layout.LineHeight)
		}
		p.y += layout.CategorySpacing
	}
	return p.pages
}

type paginator struct {
	layout Layout
	pages  []Page
	y      float64
}

func (p *paginator) newPage() {
	p.pages = append(p.pages, Page{Number: len(p.pages) + 1})
}

func (p *paginator) add(b Block, advance float64) {
	b.Y = p.y
	cur := &p.pages[len(p.pages)-1]
	cur.Blocks = append(cur.Blocks, b)
	p.y += advance
}
