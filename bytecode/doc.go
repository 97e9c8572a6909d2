// Package bytecode defines the output of compilation: a top level
// instruction stream and the constant pool it references.
//
// A Bytecode value is handed from the compiler to the virtual machine and
// is not modified by either afterwards. It can be checked for structural
// problems with [Validate] and stored on disk with [WriteFile] and
// [ReadFile].
package bytecode
