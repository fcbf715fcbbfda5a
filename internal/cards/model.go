package cards

// FormData is the text the user typed for one card.
type FormData struct {
	Title   string `json:"title" form:"title"`
	Tagline string `json:"tagline" form:"tagline"`
	FunFact string `json:"funFact" form:"funFact"`
	ProTip  string `json:"proTip" form:"proTip"`
}

// SeriesID identifies a frame design.
type SeriesID string

const (
	Series1   SeriesID = "series-1"
	Series2   SeriesID = "series-2"
	Series3   SeriesID = "series-3"
	Series4   SeriesID = "series-4"
	Specialty SeriesID = "specialty"
)

type Series struct {
	ID         SeriesID `json:"id"`
	Label      string   `json:"label"`
	Color      string   `json:"color"`
	FrameAsset string   `json:"frame_asset"`
}

// AllSeries lists the frame designs in display order.
var AllSeries = []Series{
	{ID: Series1, Label: "Series 1", Color: "#4A90D9", FrameAsset: "frames/series-1.png"},
	{ID: Series2, Label: "Series 2", Color: "#D94A6B", FrameAsset: "frames/series-2.png"},
	{ID: Series3, Label: "Series 3", Color: "#4AD97A", FrameAsset: "frames/series-3.png"},
	{ID: Series4, Label: "Series 4", Color: "#D9C84A", FrameAsset: "frames/series-4.png"},
	{ID: Specialty, Label: "Specialty", Color: "#A84AD9", FrameAsset: "frames/specialty.png"},
}

// DefaultSeries is used when a request does not name one.
const DefaultSeries = Series1

// CardBackAsset is the shared reverse side of every card.
const CardBackAsset = "frames/back.jpg"

// LookupSeries returns the series with the given id.
func LookupSeries(id SeriesID) (Series, bool) {
	for _, s := range AllSeries {
		if s.ID == id {
			return s, true
		}
	}
	return Series{}, false
}
