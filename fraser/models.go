package fraser

import "encoding/xml"

// Identify describes the repository.
type Identify struct {
	RepositoryName    string   `xml:"repositoryName"`
	BaseURL           string   `xml:"baseURL"`
	ProtocolVersion   string   `xml:"protocolVersion"`
	AdminEmails       []string `xml:"adminEmail"`
	EarliestDatestamp string   `xml:"earliestDatestamp"`
	DeletedRecord     string   `xml:"deletedRecord"`
	Granularity       string   `xml:"granularity"`
	Descriptions      []RawXML `xml:"description"`
}

// Header identifies a record without its metadata.
type Header struct {
	Identifier string   `xml:"identifier"`
	Datestamp  string   `xml:"datestamp"`
	SetSpecs   []string `xml:"setSpec"`
	Status     string   `xml:"status,attr"`
}

// Deleted reports whether the record behind this header has been removed
// from the repository.
func (h Header) Deleted() bool {
	return h.Status == "deleted"
}

// Record is one repository record. Metadata carries the raw XML of the
// requested metadata format (MODS by default) for caller-side
// interpretation.
type Record struct {
	Header   Header `xml:"header"`
	Metadata RawXML `xml:"metadata"`
	About    RawXML `xml:"about"`
}

// Deleted reports whether the record has been removed; deleted records
// carry no metadata.
func (r Record) Deleted() bool {
	return r.Header.Deleted()
}

// Set is one node of the repository's set hierarchy.
type Set struct {
	Spec        string `xml:"setSpec"`
	Name        string `xml:"setName"`
	Description RawXML `xml:"setDescription"`
}

// MetadataFormat is one metadata format available for a record.
type MetadataFormat struct {
	Prefix    string `xml:"metadataPrefix"`
	Schema    string `xml:"schema"`
	Namespace string `xml:"metadataNamespace"`
}

// RawXML preserves an element's inner XML verbatim.
type RawXML struct {
	XML string `xml:",innerxml"`
}

// resumptionToken carries the cursor of an incomplete list response.
type resumptionToken struct {
	Value            string `xml:",chardata"`
	CompleteListSize string `xml:"completeListSize,attr"`
	Cursor           string `xml:"cursor,attr"`
}

// response is the OAI-PMH envelope. Exactly one verb element (or error) is
// populated per response.
type response struct {
	XMLName      xml.Name  `xml:"OAI-PMH"`
	ResponseDate string    `xml:"responseDate"`
	Error        *oaiError `xml:"error"`

	Identify *Identify `xml:"Identify"`

	GetRecord *struct {
		Record Record `xml:"record"`
	} `xml:"GetRecord"`

	ListRecords *struct {
		Records         []Record         `xml:"record"`
		ResumptionToken *resumptionToken `xml:"resumptionToken"`
	} `xml:"ListRecords"`

	ListIdentifiers *struct {
		Headers         []Header         `xml:"header"`
		ResumptionToken *resumptionToken `xml:"resumptionToken"`
	} `xml:"ListIdentifiers"`

	ListSets *struct {
		Sets            []Set            `xml:"set"`
		ResumptionToken *resumptionToken `xml:"resumptionToken"`
	} `xml:"ListSets"`

	ListMetadataFormats *struct {
		Formats []MetadataFormat `xml:"metadataFormat"`
	} `xml:"ListMetadataFormats"`
}

type oaiError struct {
	Code    string `xml:"code,attr"`
	Message string `xml:",chardata"`
}
