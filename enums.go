package stlouisfed

// SortOrder sorts results in ascending or descending order of the
// order-by attribute.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// OrderBy selects the attribute results are ordered by. Each operation
// accepts its own subset; passing one outside that subset is rejected
// before any request is made.
type OrderBy string

const (
	OrderBySeriesID         OrderBy = "series_id"
	OrderBySeriesCount      OrderBy = "series_count"
	OrderByTitle            OrderBy = "title"
	OrderByUnits            OrderBy = "units"
	OrderByFrequency        OrderBy = "frequency"
	OrderBySeasonalAdj      OrderBy = "seasonal_adjustment"
	OrderByRealtimeStart    OrderBy = "realtime_start"
	OrderByRealtimeEnd      OrderBy = "realtime_end"
	OrderByLastUpdated      OrderBy = "last_updated"
	OrderByObservationStart OrderBy = "observation_start"
	OrderByObservationEnd   OrderBy = "observation_end"
	OrderByPopularity       OrderBy = "popularity"
	OrderByGroupPopularity  OrderBy = "group_popularity"
	OrderByCreated          OrderBy = "created"
	OrderByName             OrderBy = "name"
	OrderByGroupID          OrderBy = "group_id"
	OrderBySearchRank       OrderBy = "search_rank"
	OrderByReleaseID        OrderBy = "release_id"
	OrderBySourceID         OrderBy = "source_id"
	OrderByPressRelease     OrderBy = "press_release"
	OrderByReleaseDate      OrderBy = "release_date"
	OrderByReleaseName      OrderBy = "release_name"
)

// FilterVariable is the series attribute to filter results by.
type FilterVariable string

const (
	FilterByFrequency   FilterVariable = "frequency"
	FilterByUnits       FilterVariable = "units"
	FilterBySeasonalAdj FilterVariable = "seasonal_adjustment"
)

// FilterValue limits series updates by geographic scope.
type FilterValue string

const (
	// FilterMacro limits results to macroeconomic data series, in general
	// series for entire countries.
	FilterMacro FilterValue = "macro"
	// FilterRegional limits results to series for parts of the US: states,
	// counties and Metropolitan Statistical Areas.
	FilterRegional FilterValue = "regional"
	FilterAll      FilterValue = "all"
)

// Unit indicates a data value transformation.
type Unit string

const (
	// UnitLin is levels, no transformation.
	UnitLin Unit = "lin"
	// UnitChg is change.
	UnitChg Unit = "chg"
	// UnitCh1 is change from year ago.
	UnitCh1 Unit = "ch1"
	// UnitPch is percent change.
	UnitPch Unit = "pch"
	// UnitPc1 is percent change from year ago.
	UnitPc1 Unit = "pc1"
	// UnitPca is compounded annual rate of change.
	UnitPca Unit = "pca"
	// UnitCch is continuously compounded rate of change.
	UnitCch Unit = "cch"
	// UnitCca is continuously compounded annual rate of change.
	UnitCca Unit = "cca"
	// UnitLog is natural log.
	UnitLog Unit = "log"
)

// Frequency indicates a lower frequency to aggregate values to. The service
// converts higher frequency series into lower frequency ones (daily is the
// highest, annual the lowest); see AggregationMethod for how values are
// combined.
type Frequency string

const (
	FrequencyDaily      Frequency = "d"
	FrequencyWeekly     Frequency = "w"
	FrequencyBiweekly   Frequency = "bw"
	FrequencyMonthly    Frequency = "m"
	FrequencyQuarterly  Frequency = "q"
	FrequencySemiannual Frequency = "sa"
	FrequencyAnnual     Frequency = "a"

	// Frequencies with period descriptions.
	FrequencyWeeklyEndingFriday    Frequency = "wef"
	FrequencyWeeklyEndingThursday  Frequency = "weth"
	FrequencyWeeklyEndingWednesday Frequency = "wew"
	FrequencyWeeklyEndingTuesday   Frequency = "wetu"
	FrequencyWeeklyEndingMonday    Frequency = "wem"
	FrequencyWeeklyEndingSunday    Frequency = "wesu"
	FrequencyWeeklyEndingSaturday  Frequency = "wesa"
	FrequencyBiweeklyEndingWed     Frequency = "bwew"
	FrequencyBiweeklyEndingMonday  Frequency = "bwem"
)

// AggregationMethod indicates how values are combined during frequency
// aggregation.
type AggregationMethod string

const (
	AggregationAverage     AggregationMethod = "avg"
	AggregationSum         AggregationMethod = "sum"
	AggregationEndOfPeriod AggregationMethod = "eop"
)

// OutputType selects how archival observations are laid out. See
// https://alfred.stlouisfed.org/help/downloaddata#outputformats
type OutputType int

const (
	// OutputRealtimePeriod returns observations by real-time period.
	OutputRealtimePeriod OutputType = 1
	// OutputAll returns all observations by vintage date.
	OutputAll OutputType = 2
	// OutputNewAndRevised returns new and revised observations only,
	// by vintage date.
	OutputNewAndRevised OutputType = 3
	// OutputInitialReleaseOnly returns initial releases only.
	OutputInitialReleaseOnly OutputType = 4
)

// SearchType determines the type of series search to perform.
type SearchType string

const (
	// SearchFullText searches series title, units, frequency and tags by
	// parsing words into stems, so "Industry" also matches "Industries".
	SearchFullText SearchType = "full_text"
	// SearchSeriesID performs a substring search on series IDs; "*" anchors
	// and matches zero or more characters, so "m*sl" finds series starting
	// with "m" and ending with "sl".
	SearchSeriesID SearchType = "series_id"
)

// TagGroupID filters tags by type.
type TagGroupID string

const (
	TagGroupFrequency            TagGroupID = "freq"
	TagGroupGeneralOrConcept     TagGroupID = "gen"
	TagGroupGeography            TagGroupID = "geo"
	TagGroupGeographyType        TagGroupID = "geot"
	TagGroupRelease              TagGroupID = "rls"
	TagGroupSeasonalAdjustment   TagGroupID = "seas"
	TagGroupSource               TagGroupID = "src"
	TagGroupCitationAndCopyright TagGroupID = "cc"
)

// Seasonality of a series group.
type Seasonality string

const (
	SeasonallyAdjusted         Seasonality = "SA"
	NotSeasonallyAdjusted      Seasonality = "NSA"
	SmoothedSeasonallyAdjusted Seasonality = "SSA"
)

// RegionType is the kind of region to pull regional data for.
type RegionType string

const (
	// RegionBEA is a Bureau of Economic Analysis region.
	RegionBEA RegionType = "bea"
	// RegionMSA is a Metropolitan Statistical Area.
	RegionMSA RegionType = "msa"
	// RegionFRB is a Federal Reserve Bank district.
	RegionFRB RegionType = "frb"
	// RegionNECTA is a New England City and Town Area.
	RegionNECTA RegionType = "necta"
	RegionState RegionType = "state"
	// RegionCountry is a country.
	RegionCountry RegionType = "country"
	// RegionCounty is a USA county.
	RegionCounty RegionType = "county"
	// RegionCensusRegion is a US Census region.
	RegionCensusRegion RegionType = "censusregion"
	// RegionCensusDivision is a US Census division.
	RegionCensusDivision RegionType = "censusdivision"
)

// ShapeType is the kind of shape to pull map boundary files for. It covers
// the same regions as RegionType.
type ShapeType string

const (
	ShapeBEA            ShapeType = "bea"
	ShapeMSA            ShapeType = "msa"
	ShapeFRB            ShapeType = "frb"
	ShapeNECTA          ShapeType = "necta"
	ShapeState          ShapeType = "state"
	ShapeCountry        ShapeType = "country"
	ShapeCounty         ShapeType = "county"
	ShapeCensusRegion   ShapeType = "censusregion"
	ShapeCensusDivision ShapeType = "censusdivision"
)

// Valid reports whether the shape type is one of the nine map types.
func (s ShapeType) Valid() bool {
	return RegionType(s).Valid()
}

func (r RegionType) Valid() bool {
	switch r {
	case RegionBEA, RegionMSA, RegionFRB, RegionNECTA, RegionState,
		RegionCountry, RegionCounty, RegionCensusRegion, RegionCensusDivision:
		return true
	}
	return false
}

func (u Unit) Valid() bool {
	switch u {
	case UnitLin, UnitChg, UnitCh1, UnitPch, UnitPc1, UnitPca, UnitCch, UnitCca, UnitLog:
		return true
	}
	return false
}

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly,
		FrequencyQuarterly, FrequencySemiannual, FrequencyAnnual,
		FrequencyWeeklyEndingFriday, FrequencyWeeklyEndingThursday,
		FrequencyWeeklyEndingWednesday, FrequencyWeeklyEndingTuesday,
		FrequencyWeeklyEndingMonday, FrequencyWeeklyEndingSunday,
		FrequencyWeeklyEndingSaturday, FrequencyBiweeklyEndingWed,
		FrequencyBiweeklyEndingMonday:
		return true
	}
	return false
}

func (m AggregationMethod) Valid() bool {
	switch m {
	case AggregationAverage, AggregationSum, AggregationEndOfPeriod:
		return true
	}
	return false
}

func (t OutputType) Valid() bool {
	return t >= OutputRealtimePeriod && t <= OutputInitialReleaseOnly
}

func (s SearchType) Valid() bool {
	return s == SearchFullText || s == SearchSeriesID
}

func (g TagGroupID) Valid() bool {
	switch g {
	case TagGroupFrequency, TagGroupGeneralOrConcept, TagGroupGeography,
		TagGroupGeographyType, TagGroupRelease, TagGroupSeasonalAdjustment,
		TagGroupSource, TagGroupCitationAndCopyright:
		return true
	}
	return false
}

func (s Seasonality) Valid() bool {
	return s == SeasonallyAdjusted || s == NotSeasonallyAdjusted || s == SmoothedSeasonallyAdjusted
}

func (s SortOrder) Valid() bool {
	return s == SortAsc || s == SortDesc
}

func (f FilterVariable) Valid() bool {
	return f == FilterByFrequency || f == FilterByUnits || f == FilterBySeasonalAdj
}

func (f FilterValue) Valid() bool {
	return f == FilterMacro || f == FilterRegional || f == FilterAll
}
