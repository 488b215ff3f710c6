// Package simple holds dynamically typed primitive values, the payload that
// event sources hand to event sinks.
package simple

// Kind is the runtime type tag of a Value.
type Kind int

const (
	None Kind = iota
	Char8
	Bool
	Int8
	UInt8
	Int16
	UInt16
	Int32
	UInt32
	Int64
	UInt64
	Float32
	Float64
	Duration
	DateTime
	String8
)

var kindNames = [...]string{
	None:     "None",
	Char8:    "Char8",
	Bool:     "Bool",
	Int8:     "Int8",
	UInt8:    "UInt8",
	Int16:    "Int16",
	UInt16:   "UInt16",
	Int32:    "Int32",
	UInt32:   "UInt32",
	Int64:    "Int64",
	UInt64:   "UInt64",
	Float32:  "Float32",
	Float64:  "Float64",
	Duration: "Duration",
	DateTime: "DateTime",
	String8:  "String8",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}
