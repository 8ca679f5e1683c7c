package msapi

// Link represents a Partner Center hypermedia link.
type Link struct {
	URI     string        `json:"uri"               yaml:"uri"`
	Method  string        `json:"method,omitempty"  yaml:"method,omitempty"`
	Headers []interface{} `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// Links is a map of named links, e.g. "self", "next", "availabilities".
type Links map[string]Link

// Attributes carries the Partner Center object type and, for mutable
// resources, the entity tag.
type Attributes struct {
	ObjectType string `json:"objectType,omitempty" yaml:"objectType,omitempty"`
	Etag       string `json:"etag,omitempty"       yaml:"etag,omitempty"`
}

// ItemList is the Partner Center collection envelope.
type ItemList[T any] struct {
	TotalCount int        `json:"totalCount"           yaml:"totalCount"`
	Items      []T        `json:"items"                yaml:"items"`
	Links      Links      `json:"links,omitempty"      yaml:"links,omitempty"`
	Attributes Attributes `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// ODataList is the Microsoft Graph collection envelope.
type ODataList[T any] struct {
	Context  string `json:"@odata.context,omitempty"  yaml:"context,omitempty"`
	NextLink string `json:"@odata.nextLink,omitempty" yaml:"nextLink,omitempty"`
	Value    []T    `json:"value"                     yaml:"value"`
}

// BillingCycle is the order billing frequency.
type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleAnnual  BillingCycle = "annual"
)
