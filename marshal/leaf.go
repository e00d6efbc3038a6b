package marshal

import "github.com/teamworkguy2/datatransfer/stream"

// leaf is a Factory writing one named scalar leaf.
type leaf[T any] struct {
	name  string
	write func(stream.BlockWriter, string, T) error
	read  func(stream.BlockReader, string) (T, error)
}

func (l leaf[T]) Encode(w stream.BlockWriter, v T) error {
	return l.write(w, l.name, v)
}

func (l leaf[T]) Decode(r stream.BlockReader) (T, error) {
	return l.read(r, l.name)
}

// StringLeaf is a Factory for string leaves called name; "" gives
// anonymous entries.
func StringLeaf(name string) Factory[string] {
	return leaf[string]{name, stream.BlockWriter.WriteString, stream.BlockReader.ReadString}
}

func BoolLeaf(name string) Factory[bool] {
	return leaf[bool]{name, stream.BlockWriter.WriteBool, stream.BlockReader.ReadBool}
}

func Int32Leaf(name string) Factory[int32] {
	return leaf[int32]{name, stream.BlockWriter.WriteInt32, stream.BlockReader.ReadInt32}
}

func Int64Leaf(name string) Factory[int64] {
	return leaf[int64]{name, stream.BlockWriter.WriteInt64, stream.BlockReader.ReadInt64}
}

func Float64Leaf(name string) Factory[float64] {
	return leaf[float64]{name, stream.BlockWriter.WriteFloat64, stream.BlockReader.ReadFloat64}
}

func BytesLeaf(name string) Factory[[]byte] {
	return leaf[[]byte]{name, stream.BlockWriter.WriteBytes, stream.BlockReader.ReadBytes}
}
