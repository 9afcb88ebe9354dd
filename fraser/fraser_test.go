package fraser

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(WithBaseURL(server.URL))
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return parsed
}

func oaiEnvelope(inner string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<OAI-PMH xmlns="http://www.openarchives.org/OAI/2.0/">
  <responseDate>2026-08-31T12:00:00Z</responseDate>
  <request>https://fraser.stlouisfed.org/oai</request>
  ` + inner + `
</OAI-PMH>`
}

func TestIdentify(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Identify", r.URL.Query().Get("verb"))
		fmt.Fprint(w, oaiEnvelope(`<Identify>
			<repositoryName>FRASER</repositoryName>
			<baseURL>https://fraser.stlouisfed.org/oai</baseURL>
			<protocolVersion>2.0</protocolVersion>
			<adminEmail>fraser@stls.frb.org</adminEmail>
			<earliestDatestamp>2014-09-10</earliestDatestamp>
			<deletedRecord>transient</deletedRecord>
			<granularity>YYYY-MM-DD</granularity>
		</Identify>`))
	}))

	id, err := c.Identify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "FRASER", id.RepositoryName)
	assert.Equal(t, "2.0", id.ProtocolVersion)
	assert.Equal(t, []string{"fraser@stls.frb.org"}, id.AdminEmails)
}

func TestGetRecord(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "GetRecord", q.Get("verb"))
		assert.Equal(t, "oai:fraser.stlouisfed.org:title:176", q.Get("identifier"))
		assert.Equal(t, "mods", q.Get("metadataPrefix"), "MODS is the default format")
		fmt.Fprint(w, oaiEnvelope(`<GetRecord><record>
			<header>
				<identifier>oai:fraser.stlouisfed.org:title:176</identifier>
				<datestamp>2020-06-23</datestamp>
				<setSpec>president</setSpec>
			</header>
			<metadata><mods xmlns="http://www.loc.gov/mods/v3"><titleInfo><title>Economic Report of the President</title></titleInfo></mods></metadata>
		</record></GetRecord>`))
	}))

	record, err := c.GetRecord(context.Background(), "oai:fraser.stlouisfed.org:title:176", "")
	require.NoError(t, err)
	assert.Equal(t, "oai:fraser.stlouisfed.org:title:176", record.Header.Identifier)
	assert.False(t, record.Deleted())
	assert.Contains(t, record.Metadata.XML, "Economic Report of the President")
}

func TestGetRecord_IDDoesNotExist(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, oaiEnvelope(`<error code="idDoesNotExist">No matching identifier</error>`))
	}))

	_, err := c.GetRecord(context.Background(), "oai:fraser.stlouisfed.org:title:0", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIDDoesNotExist)

	var oaiErr *OAIError
	require.ErrorAs(t, err, &oaiErr)
	assert.Equal(t, "idDoesNotExist", oaiErr.Code)
}

func TestListMetadataFormats(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, oaiEnvelope(`<ListMetadataFormats>
			<metadataFormat><metadataPrefix>mods</metadataPrefix><schema>http://www.loc.gov/standards/mods/v3/mods-3-6.xsd</schema><metadataNamespace>http://www.loc.gov/mods/v3</metadataNamespace></metadataFormat>
			<metadataFormat><metadataPrefix>oai_dc</metadataPrefix><schema>http://www.openarchives.org/OAI/2.0/oai_dc.xsd</schema><metadataNamespace>http://www.openarchives.org/OAI/2.0/oai_dc/</metadataNamespace></metadataFormat>
		</ListMetadataFormats>`))
	}))

	formats, err := c.ListMetadataFormats(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, formats, 2)
	assert.Equal(t, "mods", formats[0].Prefix)
	assert.Equal(t, "oai_dc", formats[1].Prefix)
}

type pageRequest struct {
	verb, prefix, token string
}

func TestListRecords_FollowsResumptionToken(t *testing.T) {
	var requests []pageRequest
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		requests = append(requests, pageRequest{
			verb:   q.Get("verb"),
			prefix: q.Get("metadataPrefix"),
			token:  q.Get("resumptionToken"),
		})
		if q.Get("resumptionToken") == "" {
			fmt.Fprint(w, oaiEnvelope(`<ListRecords>
				<record><header><identifier>oai:fraser.stlouisfed.org:title:1</identifier><datestamp>2020-01-01</datestamp></header><metadata><mods/></metadata></record>
				<record><header><identifier>oai:fraser.stlouisfed.org:title:2</identifier><datestamp>2020-01-02</datestamp></header><metadata><mods/></metadata></record>
				<resumptionToken cursor="0" completeListSize="3">page-2</resumptionToken>
			</ListRecords>`))
			return
		}
		fmt.Fprint(w, oaiEnvelope(`<ListRecords>
			<record><header><identifier>oai:fraser.stlouisfed.org:title:3</identifier><datestamp>2020-01-03</datestamp></header><metadata><mods/></metadata></record>
		</ListRecords>`))
	}))

	it := c.ListRecords(nil)

	var ids []string
	for it.Next(context.Background()) {
		ids = append(ids, it.Item().Header.Identifier)
	}
	require.NoError(t, it.Err())

	assert.Equal(t, []string{
		"oai:fraser.stlouisfed.org:title:1",
		"oai:fraser.stlouisfed.org:title:2",
		"oai:fraser.stlouisfed.org:title:3",
	}, ids)

	require.Len(t, requests, 2)
	assert.Equal(t, "page-2", requests[1].token)
	assert.Empty(t, requests[1].prefix, "a resumed request carries the token and the verb only")
}

func TestListRecords_NoRecordsMatchIsEmptyNotError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, oaiEnvelope(`<error code="noRecordsMatch">No records match the request</error>`))
	}))

	it := c.ListRecords(&ListOptions{Set: "nothing-here"})
	assert.False(t, it.Next(context.Background()))
	assert.NoError(t, it.Err())
}

func TestListRecords_IgnoreDeleted(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, oaiEnvelope(`<ListRecords>
			<record><header status="deleted"><identifier>oai:fraser.stlouisfed.org:title:1</identifier><datestamp>2020-01-01</datestamp></header></record>
			<record><header><identifier>oai:fraser.stlouisfed.org:title:2</identifier><datestamp>2020-01-02</datestamp></header><metadata><mods/></metadata></record>
		</ListRecords>`))
	}))

	it := c.ListRecords(&ListOptions{IgnoreDeleted: true})

	var ids []string
	for it.Next(context.Background()) {
		ids = append(ids, it.Item().Header.Identifier)
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []string{"oai:fraser.stlouisfed.org:title:2"}, ids)
}

func TestListIdentifiers_QueryParameters(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "ListIdentifiers", q.Get("verb"))
		assert.Equal(t, "president", q.Get("set"))
		assert.Equal(t, "2020-01-01", q.Get("from"))
		fmt.Fprint(w, oaiEnvelope(`<ListIdentifiers>
			<header><identifier>oai:fraser.stlouisfed.org:title:176</identifier><datestamp>2020-06-23</datestamp><setSpec>president</setSpec></header>
		</ListIdentifiers>`))
	}))

	it := c.ListIdentifiers(&ListOptions{
		Set:  "president",
		From: mustDate(t, "2020-01-01"),
	})

	require.True(t, it.Next(context.Background()))
	header := it.Item()
	assert.Equal(t, []string{"president"}, header.SetSpecs)
	assert.False(t, it.Next(context.Background()))
	require.NoError(t, it.Err())
}

func TestListSets(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, oaiEnvelope(`<ListSets>
			<set><setSpec>president</setSpec><setName>Economic Report of the President</setName></set>
		</ListSets>`))
	}))

	it := c.ListSets()
	require.True(t, it.Next(context.Background()))
	assert.Equal(t, "president", it.Item().Spec)
	assert.False(t, it.Next(context.Background()))
	require.NoError(t, it.Err())
}

func TestRequest_HTTPStatusError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := c.Identify(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestOAIError_UnknownCodeDoesNotUnwrap(t *testing.T) {
	err := &OAIError{Code: "somethingNew", Message: "m"}
	assert.False(t, errors.Is(err, ErrBadArgument))
	assert.Equal(t, "oai error somethingNew: m", err.Error())
}
