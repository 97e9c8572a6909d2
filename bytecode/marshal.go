package bytecode

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/Yag000/Interpreter-Monkey/object"
	"github.com/Yag000/Interpreter-Monkey/op"
)

const (
	// Magic prefixes every serialized bytecode file.
	Magic = "MKBC"

	// Version is the current file format version.
	Version = 1
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("bytecode: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

type file struct {
	Version      int        `cbor:"version"`
	Instructions []byte     `cbor:"instructions"`
	Constants    []constant `cbor:"constants"`
}

type constant struct {
	Type object.Type `cbor:"type"`
	Int  int64       `cbor:"int,omitempty"`
	Str  string      `cbor:"str,omitempty"`
	Code []byte      `cbor:"code,omitempty"`
}

// Marshal serializes b. Only the constant types produced by the compiler
// (Int, String and Function) are supported.
func Marshal(b *Bytecode) ([]byte, error) {
	f := file{
		Version:      Version,
		Instructions: b.Instructions,
		Constants:    make([]constant, 0, len(b.Constants)),
	}
	for i, obj := range b.Constants {
		switch obj := obj.(type) {
		case *object.Int:
			f.Constants = append(f.Constants, constant{Type: object.INT, Int: obj.Value()})
		case *object.String:
			f.Constants = append(f.Constants, constant{Type: object.STRING, Str: obj.Value()})
		case *object.Function:
			f.Constants = append(f.Constants, constant{Type: object.FUNCTION, Str: obj.Name(), Code: obj.Instructions()})
		default:
			return nil, fmt.Errorf("bytecode: cannot marshal constant %d of type %T", i, obj)
		}
	}
	data, err := cborEncMode.Marshal(f)
	if err != nil {
		return nil, err
	}
	return append([]byte(Magic), data...), nil
}

// Unmarshal deserializes bytecode produced by Marshal.
func Unmarshal(data []byte) (*Bytecode, error) {
	if !bytes.HasPrefix(data, []byte(Magic)) {
		return nil, fmt.Errorf("bytecode: missing %q header", Magic)
	}
	var f file
	if err := cbor.Unmarshal(data[len(Magic):], &f); err != nil {
		return nil, fmt.Errorf("bytecode: %w", err)
	}
	if f.Version != Version {
		return nil, fmt.Errorf("bytecode: unsupported version %d (want %d)", f.Version, Version)
	}
	b := &Bytecode{
		Instructions: op.Instructions(f.Instructions),
		Constants:    make([]object.Object, 0, len(f.Constants)),
	}
	for i, c := range f.Constants {
		switch c.Type {
		case object.INT:
			b.Constants = append(b.Constants, object.NewInt(c.Int))
		case object.STRING:
			b.Constants = append(b.Constants, object.NewString(c.Str))
		case object.FUNCTION:
			b.Constants = append(b.Constants, object.NewFunction(c.Str, op.Instructions(c.Code)))
		default:
			return nil, fmt.Errorf("bytecode: constant %d has unknown type %q", i, c.Type)
		}
	}
	return b, nil
}

// WriteFile serializes b to the named file.
func WriteFile(name string, b *Bytecode) error {
	data, err := Marshal(b)
	if err != nil {
		return err
	}
	return os.WriteFile(name, data, 0o644)
}

// ReadFile reads bytecode written by WriteFile.
func ReadFile(name string) (*Bytecode, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}
