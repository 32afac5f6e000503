package override

// MutationRequest is the POST /api/overrides body. OverrideValue nil is
// meaningful: it stores an explicit "exclude from price lookup" entry.
type MutationRequest struct {
	ContractAddress string  `json:"contractAddress"`
	Symbol          string  `json:"symbol"`
	Chain           string  `json:"chain"`
	OverrideType    string  `json:"overrideType"`
	OverrideValue   *string `json:"overrideValue"`
	WalletAddress   *string `json:"walletAddress,omitempty"`
	Action          string  `json:"action"`
}

// ResolvedOverrides holds the two lookup maps the aggregator consumes.
// A key present with a nil value means "explicitly excluded from price
// lookup"; an absent key means "no override". Callers must preserve
// that distinction.
type ResolvedOverrides struct {
	Symbols   map[string]*string `json:"symbolOverrides"`
	Addresses map[string]*string `json:"addressOverrides"`
}

// NewResolvedOverrides returns an empty, non-nil pair of maps.
func NewResolvedOverrides() ResolvedOverrides {
	return ResolvedOverrides{
		Symbols:   make(map[string]*string),
		Addresses: make(map[string]*string),
	}
}

// SymbolValue looks up a symbol override, reporting presence separately
// from the value so nil-valued entries stay distinguishable.
func (r ResolvedOverrides) SymbolValue(symbol string) (*string, bool) {
	v, ok := r.Symbols[symbol]
	return v, ok
}

// AddressValue looks up a contract-address override.
func (r ResolvedOverrides) AddressValue(address string) (*string, bool) {
	v, ok := r.Addresses[address]
	return v, ok
}
