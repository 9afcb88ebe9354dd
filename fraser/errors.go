package fraser

import (
	"errors"
	"fmt"
)

// Sentinels for the OAI-PMH protocol error conditions.
var (
	ErrBadArgument             = errors.New("badArgument")
	ErrBadResumptionToken      = errors.New("badResumptionToken")
	ErrBadVerb                 = errors.New("badVerb")
	ErrCannotDisseminateFormat = errors.New("cannotDisseminateFormat")
	ErrIDDoesNotExist          = errors.New("idDoesNotExist")
	ErrNoRecordsMatch          = errors.New("noRecordsMatch")
	ErrNoMetadataFormats       = errors.New("noMetadataFormats")
	ErrNoSetHierarchy          = errors.New("noSetHierarchy")
)

var oaiErrorCodes = map[string]error{
	"badArgument":             ErrBadArgument,
	"badResumptionToken":      ErrBadResumptionToken,
	"badVerb":                 ErrBadVerb,
	"cannotDisseminateFormat": ErrCannotDisseminateFormat,
	"idDoesNotExist":          ErrIDDoesNotExist,
	"noRecordsMatch":          ErrNoRecordsMatch,
	"noMetadataFormats":       ErrNoMetadataFormats,
	"noSetHierarchy":          ErrNoSetHierarchy,
}

// OAIError is a protocol-level error condition reported by the repository.
// It unwraps to the sentinel matching its code, so callers can test with
// errors.Is(err, fraser.ErrIDDoesNotExist).
type OAIError struct {
	Code    string
	Message string
}

func (e *OAIError) Error() string {
	return fmt.Sprintf("oai error %s: %s", e.Code, e.Message)
}

func (e *OAIError) Unwrap() error {
	return oaiErrorCodes[e.Code]
}
