package skin

// ApplyAttribute applies one attribute with lifecycle checks
// Attributes may only be applied before initialization
func ApplyAttribute(o Object, key, value string) (bool, error) {
	g := o.Base()
	switch {
	case g.state == StateDisposed:
		return false, g.fail("ApplyAttribute", ErrDisposed)
	case g.state.Initialized():
		return false, g.fail("ApplyAttribute", ErrAlreadyInitialized)
	}
	return o.SetAttribute(key, value), nil
}

// Configure applies attrs in document order and settles the object
// Unrecognized attributes are returned for the caller's reporting policy
func Configure(o Object, attrs []Attr) ([]Attr, error) {
	var unknown []Attr
	for _, a := range attrs {
		handled, err := ApplyAttribute(o, a.Key, a.Value)
		if err != nil {
			return unknown, err
		}
		if !handled {
			unknown = append(unknown, a)
		}
	}
	o.Base().settle()
	return unknown, nil
}
