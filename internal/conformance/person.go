package conformance

import (
	"github.com/teamworkguy2/datatransfer/marshal"
	"github.com/teamworkguy2/datatransfer/stream"
)

// Person is a self-describing record used to exercise every backend with
// nested blocks, anonymous list entries and a map.
type Person struct {
	ID           int32
	Name         string
	Permanent    bool
	PhoneNumbers string
	Cities       []string
	Properties   map[string]string
}

// NoOne is the reference record.
func NoOne() *Person {
	return &Person{
		ID:           22,
		Name:         "No One",
		Permanent:    true,
		PhoneNumbers: "1111111111,2222222222,9999999999",
		Cities:       []string{"City A", "City 2", "City C"},
		Properties: map[string]string{
			"hasHair": "true",
			"dob":     "1984-6-8",
		},
	}
}

var cityFactory = marshal.StringLeaf("")

func (p *Person) MarshalBlock(w stream.BlockWriter) error {
	if err := w.WriteStartBlock("person"); err != nil {
		return err
	}
	if err := w.WriteInt32("id", p.ID); err != nil {
		return err
	}
	if err := w.WriteString("name", p.Name); err != nil {
		return err
	}
	if err := w.WriteBool("permanent", p.Permanent); err != nil {
		return err
	}
	if err := w.WriteString("phoneNumbers", p.PhoneNumbers); err != nil {
		return err
	}
	if err := marshal.WriteList(w, "cities", "", p.Cities, cityFactory); err != nil {
		return err
	}
	if err := marshal.WriteStringMap(w, "properties", p.Properties); err != nil {
		return err
	}
	return w.WriteEndBlock()
}

func (p *Person) UnmarshalBlock(r stream.BlockReader) error {
	if err := r.ReadStartBlock("person"); err != nil {
		return err
	}
	var err error
	if p.ID, err = r.ReadInt32("id"); err != nil {
		return err
	}
	if p.Name, err = r.ReadString("name"); err != nil {
		return err
	}
	if p.Permanent, err = r.ReadBool("permanent"); err != nil {
		return err
	}
	if p.PhoneNumbers, err = r.ReadString("phoneNumbers"); err != nil {
		return err
	}
	if p.Cities, err = marshal.ReadList(r, "cities", "", cityFactory); err != nil {
		return err
	}
	if p.Properties, err = marshal.ReadStringMap(r, "properties"); err != nil {
		return err
	}
	return r.ReadEndBlock()
}
