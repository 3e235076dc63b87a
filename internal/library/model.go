package library

// StorageKey is the single key the whole collection lives under.
const StorageKey = "tejai_library_data"

// Item is one photo and story in the library.
type Item struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Story    string `json:"story"`
	Date     string `json:"date"`
	Image    string `json:"image"`
	HasAudio bool   `json:"hasAudio"`
}

// Draft is an Item that has not been stored yet.
type Draft struct {
	Title    string `json:"title" validate:"required"`
	Story    string `json:"story"`
	Date     string `json:"date"`
	Image    string `json:"image" validate:"required,startswith=data:"`
	HasAudio bool   `json:"hasAudio"`
}

func (d Draft) withID(id string) Item {
	return Item{
		ID:       id,
		Title:    d.Title,
		Story:    d.Story,
		Date:     d.Date,
		Image:    d.Image,
		HasAudio: d.HasAudio,
	}
}

// Recording is the simulated audio state of the create form.
type Recording struct {
	Recording bool `json:"recording"`
	HasAudio  bool `json:"hasAudio"`
}
