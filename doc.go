// Package stlouisfed is a client for the Federal Reserve Bank of
// St. Louis web services: FRED and ALFRED economic time series, the FRED
// Maps regional cross sections (package fredmaps) and the FRASER digital
// library (package fraser).
//
// The service enforces a ceiling of 120 calls per 60 seconds per API key.
// Every client throttles itself against that ceiling through a rate gate
// (package rategate) before a request leaves the process, so a burst of
// calls blocks instead of failing. Gates can share their admission log
// through Redis or PostgreSQL when several processes use one key.
//
//	fred, err := stlouisfed.New(stlouisfed.WithAPIKey("abcdefghijklmnopqrstuvwxyz123456"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	obs, err := fred.SeriesObservations(ctx, "GNPCA", nil)
//
// FRED answers with current data; ALFRED (NewALFRED) answers with data as
// it existed over time, defaulting the real-time period to the full
// archive instead of today.
package stlouisfed
