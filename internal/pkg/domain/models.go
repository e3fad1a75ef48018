package domain

// Triple is a single subject, predicate, object statement as read from an RDF document.
// Blank node subjects are written as _:id and literal objects by their lexical value.
type Triple struct {
	Subject   string
	Predicate string
	Object    string
}

func NewTriple(subject, predicate, object string) Triple {
	return Triple{Subject: subject, Predicate: predicate, Object: object}
}

// Record is the intermediate offering description that the projection template is evaluated against
type Record struct {
	Offering       Offering       `json:"offering"`
	Asset          Asset          `json:"asset"`
	AssetProvision AssetProvision `json:"asset_provision"`
	UsageRights    *UsageRights   `json:"usage_rights,omitempty"`
}

// Offering ...
type Offering struct {
	Issued      *string `json:"dct_issued,omitempty"`
	Language    *string `json:"dct_language,omitempty"`
	Title       *string `json:"dct_title,omitempty"`
	Description *string `json:"dct_description,omitempty"`
	Publisher   *string `json:"dct_publisher,omitempty"`
	Creator     *string `json:"dct_creator,omitempty"`
	License     *string `json:"dct_license,omitempty"`
}

// Asset ...
type Asset struct {
	Theme       *string  `json:"dct_theme,omitempty"`
	Keywords    []string `json:"dcat_keyword,omitempty"`
	Spatial     *string  `json:"dct_spatial,omitempty"`
	Description *string  `json:"dct_description,omitempty"`
	Issued      *string  `json:"dct_issued,omitempty"`
	Creator     *string  `json:"dct_creator,omitempty"`
}

// AssetProvision describes how the asset is provided, i.e. the chosen distribution
type AssetProvision struct {
	Title       *string `json:"dct_title,omitempty"`
	Format      *string `json:"dct_format,omitempty"`
	Description *string `json:"dct_description,omitempty"`
	Issued      *string `json:"dct_issued,omitempty"`
	AccessURL   *string `json:"dcat_accessURL,omitempty"`
}

// UsageRights is an ODRL style policy scaffold. It is always created empty.
type UsageRights struct {
	Permission  []any `json:"permission"`
	Prohibition []any `json:"prohibition"`
	Obligation  []any `json:"obligation"`
}

func NewUsageRights() *UsageRights {
	return &UsageRights{
		Permission:  []any{},
		Prohibition: []any{},
		Obligation:  []any{},
	}
}
