package wiki40b_bpe

// RecordFilter rejects records whose cleaned text is too short to be useful
// for training.
type RecordFilter struct {
	// MinChars is the minimum cleaned length in characters; 0 disables the
	// check.
	MinChars int
}

func (f RecordFilter) Check(rec *Record) error {
	if f.MinChars > 0 && rec.Chars() < f.MinChars {
		return ErrTooShort
	}
	return nil
}
