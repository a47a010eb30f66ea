package models

type Collection struct {
	ID            int    `json:"id"`
	Slug          string `json:"slug"`
	NamePT        string `json:"name_pt"`
	NameEN        string `json:"name_en"`
	DescriptionPT string `json:"description_pt"`
	DescriptionEN string `json:"description_en"`
	Image         string `json:"image,omitempty"`
}

// Product references its collection by display name, not by Collection.ID.
// A rename upstream can orphan products, which is why slug resolution
// matches against several representations of the name.
type Product struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	NameEN        string `json:"name_en"`
	Description   string `json:"description"`
	DescriptionEN string `json:"description_en"`
	Price         int64  `json:"price"`
	Image         string `json:"image"`
	Collection    string `json:"collection"`
	Gender        string `json:"gender"`
}
