package stream

import "io"

// Copy re-emits every remaining token of src through dst and returns the
// number of tokens copied. It stops at the end of src's document; dst is
// left open.
func Copy(dst BlockWriter, src BlockReader) (int, error) {
	n := 0
	for {
		e, err := src.ReadNext()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		switch e.Kind() {
		case KindStart:
			err = dst.WriteStartBlock(e.Name())
		case KindEnd:
			err = dst.WriteEndBlock()
		default:
			err = dst.WriteValue(e.Name(), e.Value())
		}
		if err != nil {
			return n, err
		}
		n++
	}
}

// Collect reads the remaining tokens of src into a slice.
func Collect(src BlockReader) ([]Element, error) {
	var res []Element
	for {
		e, err := src.ReadNext()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return res, err
		}
		res = append(res, e)
	}
}
