package bhl

// Item is one scanned volume in the Biodiversity Heritage Library.
type Item struct {
	ItemID   int    `json:"ItemID" msgpack:"item_id"`
	TitleID  int    `json:"PrimaryTitleID" msgpack:"title_id"`
	Source   string `json:"Source" msgpack:"source"`
	Volume   string `json:"Volume" msgpack:"volume"`
	Year     string `json:"Year" msgpack:"year"`
	ItemURL  string `json:"ItemUrl" msgpack:"item_url"`
	Language string `json:"Language" msgpack:"language"`
	Pages    []Page `json:"Pages,omitempty" msgpack:"pages"`
	Parts    []Part `json:"Parts,omitempty" msgpack:"parts"`
}

// Page is one scanned page of an item.
type Page struct {
	PageID      int          `json:"PageID" msgpack:"page_id"`
	PageURL     string       `json:"PageUrl" msgpack:"page_url"`
	PageNumbers []PageNumber `json:"PageNumbers,omitempty" msgpack:"page_numbers"`
	PageTypes   []PageType   `json:"PageTypes,omitempty" msgpack:"page_types"`
}

// PageNumber is one printed number on a page, with any prefix such as
// "p." or "pl.".
type PageNumber struct {
	Number string `json:"Number" msgpack:"number"`
	Prefix string `json:"Prefix" msgpack:"prefix"`
}

// PageType labels a page ("Text", "Title Page", "Illustration").
type PageType struct {
	PageTypeName string `json:"PageTypeName" msgpack:"page_type_name"`
}

// Part is an article or chapter within an item.
type Part struct {
	PartID         int    `json:"PartID" msgpack:"part_id"`
	ItemID         int    `json:"ItemID" msgpack:"item_id"`
	Title          string `json:"Title" msgpack:"title"`
	ContainerTitle string `json:"ContainerTitle" msgpack:"container_title"`
	Volume         string `json:"Volume" msgpack:"volume"`
	Issue          string `json:"Issue" msgpack:"issue"`
	Date           string `json:"Date" msgpack:"date"`
	PageRange      string `json:"PageRange" msgpack:"page_range"`
	StartPageID    int    `json:"StartPageID" msgpack:"start_page_id"`
	PartURL        string `json:"PartUrl" msgpack:"part_url"`
}

// Title is one bibliographic title (a journal or monograph series).
type Title struct {
	TitleID       int    `json:"TitleID" msgpack:"title_id"`
	FullTitle     string `json:"FullTitle" msgpack:"full_title"`
	ShortTitle    string `json:"ShortTitle" msgpack:"short_title"`
	PublisherName string `json:"PublisherName" msgpack:"publisher_name"`
	StartYear     int    `json:"StartYear" msgpack:"start_year"`
	EndYear       int    `json:"EndYear" msgpack:"end_year"`
	Items         []Item `json:"Items,omitempty" msgpack:"items"`
}

// PrintedNumbers flattens the page's printed numbers with prefixes.
func (p Page) PrintedNumbers() []string {
	var out []string
	for _, n := range p.PageNumbers {
		s := n.Number
		if n.Prefix != "" {
			s = n.Prefix + " " + s
		}
		out = append(out, s)
	}
	return out
}
