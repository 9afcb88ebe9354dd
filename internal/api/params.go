package api

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ListSeparator joins multi-value parameters such as tag_names.
const ListSeparator = ";"

// Params collects query parameters in the upstream wire formats. Unset
// parameters are simply never added.
type Params struct {
	url.Values
}

func NewParams() Params {
	return Params{Values: url.Values{}}
}

func (p Params) SetInt(key string, v int) {
	p.Set(key, strconv.Itoa(v))
}

func (p Params) SetBool(key string, v bool) {
	p.Set(key, strconv.FormatBool(v))
}

// SetDate formats a date parameter as YYYY-MM-DD.
func (p Params) SetDate(key string, t time.Time) {
	p.Set(key, t.Format("2006-01-02"))
}

// SetTimestamp formats a time parameter as YYYYMMDDHhmm.
// Example: 2018-03-02 02:20 becomes 201803020220.
func (p Params) SetTimestamp(key string, t time.Time) {
	p.Set(key, t.Format("200601021504"))
}

// SetList joins values with the upstream list separator.
func (p Params) SetList(key string, items []string) {
	p.Set(key, strings.Join(items, ListSeparator))
}
