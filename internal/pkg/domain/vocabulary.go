package domain

const (
	RDF     string = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	DCAT    string = "http://www.w3.org/ns/dcat#"
	DCT     string = "http://purl.org/dc/terms/"
	LOCN    string = "http://www.w3.org/ns/locn#"
	RDFType string = RDF + "type"
)

const (
	DCATDataset      string = DCAT + "Dataset"
	DCATDistribution string = DCAT + "Distribution"
	DCATTheme        string = DCAT + "theme"
	DCATKeyword      string = DCAT + "keyword"
	DCATAccessURL    string = DCAT + "accessURL"
)

const (
	DCTIssued      string = DCT + "issued"
	DCTLanguage    string = DCT + "language"
	DCTTitle       string = DCT + "title"
	DCTDescription string = DCT + "description"
	DCTPublisher   string = DCT + "publisher"
	DCTCreator     string = DCT + "creator"
	DCTLicense     string = DCT + "license"
	DCTFormat      string = DCT + "format"
	DCTSpatial     string = DCT + "spatial"
)

const LOCNGeometry string = LOCN + "geometry"
