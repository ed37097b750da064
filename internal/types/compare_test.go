package types

import "testing"

func TestCompareReflexive(t *testing.T) {
	complete := []Type{
		NumberType(), BoolType(), CharType(), StringType(), ArrayType(),
		Named{Name: "Point"},
		Function{ParamTypes: []Type{NumberType()}, ReturnType: BoolType()},
		Void{},
	}
	for _, ty := range complete {
		if got := Compare(ty, ty); got != Compatible {
			t.Errorf("Compare(%s, %s) = %v, want Compatible", ty, ty, got)
		}
	}
}

func TestCompareIncomplete(t *testing.T) {
	if Compare(Invalid{}, NumberType()) != CompatUnknown {
		t.Error("Invalid vs complete type should be unknown")
	}
	if Compare(Unresolved{}, NumberType()) != CompatUnknown {
		t.Error("Unresolved vs complete type should be unknown")
	}
}

func TestCompareAnyVoid(t *testing.T) {
	if Compare(Any{}, Void{}) != Incompatible {
		t.Error("Any vs Void must be incompatible")
	}
	if Compare(Any{}, NumberType()) != Compatible {
		t.Error("Any vs number must be compatible")
	}
}

func TestCompareNever(t *testing.T) {
	if Compare(Never{}, Void{}) != Compatible {
		t.Error("Never must be compatible with anything, including Void")
	}
	if Compare(StringType(), Never{}) != Compatible {
		t.Error("Never must be compatible with anything, from either side")
	}
}

func TestCompareNamedStructurally(t *testing.T) {
	a := Named{Name: "array", TypeParams: []Type{NumberType()}}
	b := Named{Name: "array", TypeParams: []Type{BoolType()}}
	if Compare(a, b) != Incompatible {
		t.Error("arrays with mismatched element type params should be incompatible")
	}
	if Compare(a, a) != Compatible {
		t.Error("identical named types should be compatible")
	}
}

func TestSupportsPredicates(t *testing.T) {
	if !SupportsLogical(BoolType()) {
		t.Error("bool should support logical")
	}
	if SupportsLogical(NumberType()) {
		t.Error("number should not support logical")
	}
	if !SupportsArithmetic(NumberType()) {
		t.Error("number should support arithmetic")
	}
	if !SupportsOrdering(Any{}) {
		t.Error("Any should satisfy any capability check except against Void")
	}
}
