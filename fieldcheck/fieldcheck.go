// Package fieldcheck reports bitfield descriptors whose layout is known to
// be wrong at build time.
//
// Constructors of the bitfield package panic when a field does not fit its
// register word or value type, or a register is misaligned. When the offset,
// width, address or stride of the call is a constant, the analyzer reports
// the same error without running the program.
package fieldcheck

import (
	"go/ast"
	"go/constant"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"

	"github.com/ezrec/mmreg/bitfield"
)

// DEFAULT_PACKAGE is the import path of the checked bitfield package.
const DEFAULT_PACKAGE = "github.com/ezrec/mmreg/bitfield"

const doc = `check constant bitfield layouts

Reports calls to the bitfield field, bit and register constructors with
constant arguments that would panic: fields wider than their value type,
fields past the end of their register word, empty fields, and register
addresses or strides not aligned to the register size.`

var Analyzer = &analysis.Analyzer{
	Name:     "fieldcheck",
	Doc:      doc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var _package_path = DEFAULT_PACKAGE

func init() {
	Analyzer.Flags.StringVar(&_package_path, "bitfield", DEFAULT_PACKAGE, "import path of the bitfield package")
}

type constructor int

const (
	ctorField constructor = iota
	ctorBit
	ctorRegister
	ctorArray
)

var _constructors = map[string]constructor{
	"NewRO":       ctorField,
	"NewWO":       ctorField,
	"NewRW":       ctorField,
	"NewRC":       ctorField,
	"NewROBit":    ctorBit,
	"NewWOBit":    ctorBit,
	"NewBit":      ctorBit,
	"NewRCBit":    ctorBit,
	"NewRegister": ctorRegister,
	"NewArray":    ctorArray,
}

func run(pass *analysis.Pass) (result any, err error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	inspect.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		fn, ok := typeutil.Callee(pass.TypesInfo, call).(*types.Func)
		if !ok || fn.Pkg() == nil || fn.Pkg().Path() != _package_path {
			return
		}
		ctor, ok := _constructors[fn.Name()]
		if !ok {
			return
		}
		args := typeArgs(pass, call)

		switch ctor {
		case ctorField:
			checkField(pass, call, fn, args, 1)
		case ctorBit:
			checkField(pass, call, fn, args, 0)
		case ctorRegister, ctorArray:
			checkRegister(pass, call, fn, args, ctor == ctorArray)
		}
	})

	return
}

// typeArgs of the descriptor type returned by call.
func typeArgs(pass *analysis.Pass, call *ast.CallExpr) (args []types.Type) {
	named, ok := types.Unalias(pass.TypesInfo.TypeOf(call)).(*types.Named)
	if !ok {
		return
	}
	list := named.TypeArgs()
	for i := 0; i < list.Len(); i++ {
		args = append(args, list.At(i))
	}
	return
}

// bitsOf a concrete integer type; false for type parameters.
func bitsOf(pass *analysis.Pass, t types.Type) (bits uint, ok bool) {
	basic, ok := t.Underlying().(*types.Basic)
	if !ok || basic.Info()&types.IsUnsigned == 0 {
		ok = false
		return
	}
	bits = uint(pass.TypesSizes.Sizeof(basic)) * 8
	return
}

func constArg(pass *analysis.Pass, expr ast.Expr) (value uint64, ok bool) {
	tv, found := pass.TypesInfo.Types[expr]
	if !found || tv.Value == nil {
		return
	}
	value, ok = constant.Uint64Val(constant.ToInt(tv.Value))
	return
}

// checkField handles NewXX(reg, offset, width) and NewXXBit(reg, offset).
// The word type is the type argument at word; field types carry the value
// type first.
func checkField(pass *analysis.Pass, call *ast.CallExpr, fn *types.Func, targs []types.Type, word int) {
	if len(targs) <= word || len(call.Args) < 2 {
		return
	}
	regBits, ok := bitsOf(pass, targs[word])
	if !ok {
		return
	}

	valueBits := uint(64)
	width := uint64(1)
	if word > 0 {
		if valueBits, ok = bitsOf(pass, targs[0]); !ok {
			return
		}
		if len(call.Args) < 3 {
			return
		}
		if width, ok = constArg(pass, call.Args[2]); !ok {
			return
		}
	}
	offset, ok := constArg(pass, call.Args[1])
	if !ok {
		return
	}

	err := bitfield.CheckField(regBits, valueBits, uint(offset), uint(width))
	if err != nil {
		pass.Reportf(call.Pos(), "%s: %v", fn.Name(), err)
	}
}

// checkRegister handles NewRegister(address) and NewArray(address, stride).
func checkRegister(pass *analysis.Pass, call *ast.CallExpr, fn *types.Func, targs []types.Type, array bool) {
	if len(targs) < 1 || len(call.Args) < 1 {
		return
	}
	bits, ok := bitsOf(pass, targs[0])
	if !ok {
		return
	}
	align := uint64(bits / 8)

	if address, ok := constArg(pass, call.Args[0]); ok && address%align != 0 {
		err := &bitfield.AlignError{Value: uintptr(address), Align: uintptr(align), Err: bitfield.ErrAddressAlign}
		pass.Reportf(call.Pos(), "%s: %v", fn.Name(), err)
	}
	if !array || len(call.Args) < 2 {
		return
	}
	if stride, ok := constArg(pass, call.Args[1]); ok && stride%align != 0 {
		err := &bitfield.AlignError{Value: uintptr(stride), Align: uintptr(align), Err: bitfield.ErrStrideAlign}
		pass.Reportf(call.Pos(), "%s: %v", fn.Name(), err)
	}
}
