package codec

// Filter transforms payload bytes on their way to and from disk. An
// encrypting cache, for instance, seals in BeforeWrite and opens in
// AfterRead.
type Filter interface {
	// BeforeWrite is called immediately before a payload is written.
	BeforeWrite(data []byte) ([]byte, error)
	// AfterRead is called immediately after a payload is read.
	AfterRead(data []byte) ([]byte, error)
}

type identity struct{}

func (identity) BeforeWrite(data []byte) ([]byte, error) { return data, nil }
func (identity) AfterRead(data []byte) ([]byte, error)   { return data, nil }

// Identity leaves payloads untouched.
var Identity Filter = identity{}

// FilterFuncs adapts a pair of functions to Filter. A nil function is the
// identity.
type FilterFuncs struct {
	Before func([]byte) ([]byte, error)
	After  func([]byte) ([]byte, error)
}

func (f FilterFuncs) BeforeWrite(data []byte) ([]byte, error) {
	if f.Before == nil {
		return data, nil
	}
	return f.Before(data)
}

func (f FilterFuncs) AfterRead(data []byte) ([]byte, error) {
	if f.After == nil {
		return data, nil
	}
	return f.After(data)
}

// Chain composes filters. BeforeWrite runs them in order and AfterRead in
// reverse, so the first filter is always the one closest to the codec.
func Chain(filters ...Filter) Filter {
	return chain(filters)
}

type chain []Filter

func (c chain) BeforeWrite(data []byte) ([]byte, error) {
	var err error
	for _, f := range c {
		if data, err = f.BeforeWrite(data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func (c chain) AfterRead(data []byte) ([]byte, error) {
	var err error
	for i := len(c) - 1; i >= 0; i-- {
		if data, err = c[i].AfterRead(data); err != nil {
			return nil, err
		}
	}
	return data, nil
}
