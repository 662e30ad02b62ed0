package types

import (
	"fmt"

	"github.com/fernlang/fern/can"
	"github.com/fernlang/fern/diag"
	"github.com/fernlang/fern/lexer"
)

// DefEntry is the inferred type of one top-level definition.
type DefEntry struct {
	Name string
	Span lexer.Span
	Type Type
}

// ExprEntry is the inferred type of one top-level expression statement.
type ExprEntry struct {
	Span lexer.Span
	Type Type
}

// Result holds the assignments of one inference run. TypeOf covers every
// sub-expression; Defs and Exprs list the top-level statements in source
// order with fully substituted types.
type Result struct {
	TypeOf map[can.Node]Type
	Defs   []DefEntry
	Exprs  []ExprEntry
}

type checker struct {
	subst  map[int]Type
	nextID int
	typeOf map[can.Node]Type
	env    map[can.BindID]Type
	diags  []diag.Diagnostic
}

// Infer runs inference over a canonical-IR root. Runtime-error and empty
// nodes infer to the error type; everything else gets its most general type.
// Re-running on unchanged IR yields identical assignments.
func Infer(root can.Node) (Result, []diag.Diagnostic) {
	c := &checker{
		subst:  map[int]Type{},
		typeOf: map[can.Node]Type{},
		env:    map[can.BindID]Type{},
	}
	res := Result{}
	switch root := root.(type) {
	case *can.Empty:
	case *can.Unit:
		// Definitions get their type variables up front so bodies can
		// reference any definition, including their own.
		for _, stmt := range root.Stmts {
			if def, ok := stmt.(*can.Def); ok {
				c.env[def.Bind] = c.fresh()
			}
		}
		for _, stmt := range root.Stmts {
			if def, ok := stmt.(*can.Def); ok {
				bodyT := c.infer(def.Body)
				t := c.unify(c.env[def.Bind], bodyT, def.Span())
				c.typeOf[def] = t
				res.Defs = append(res.Defs, DefEntry{Name: def.Name, Span: def.Span(), Type: c.apply(t)})
				continue
			}
			t := c.infer(stmt)
			res.Exprs = append(res.Exprs, ExprEntry{Span: stmt.Span(), Type: c.apply(t)})
		}
	default:
		t := c.infer(root)
		res.Exprs = append(res.Exprs, ExprEntry{Span: root.Span(), Type: c.apply(t)})
	}
	for n, t := range c.typeOf {
		c.typeOf[n] = c.apply(t)
	}
	res.TypeOf = c.typeOf
	return res, c.diags
}

func (c *checker) fresh() Type {
	v := Var{ID: c.nextID}
	c.nextID++
	return v
}

func (c *checker) infer(n can.Node) Type {
	t := c.inferExpr(n)
	c.typeOf[n] = t
	return t
}

func (c *checker) inferExpr(n can.Node) Type {
	switch n := n.(type) {
	case *can.Int:
		return Num{Elem: c.fresh()}
	case *can.Lookup:
		if t, ok := c.env[n.Bind]; ok {
			return t
		}
		return Error{}
	case *can.Tag:
		return Con{Name: n.Name}
	case *can.Opaque:
		return Con{Name: n.Name}
	case *can.Unary:
		t := c.infer(n.Operand)
		return c.generalizeArith(c.unify(t, Num{Elem: c.fresh()}, n.Span()))
	case *can.Binop:
		lt := c.infer(n.Left)
		rt := c.infer(n.Right)
		t := c.unify(lt, rt, n.Span())
		t = c.unify(t, Num{Elem: c.fresh()}, n.Span())
		return c.generalizeArith(t)
	case *can.Call:
		fnT := c.infer(n.Fn)
		args := make([]Type, len(n.Args))
		for i, arg := range n.Args {
			args[i] = c.infer(arg)
		}
		ret := c.fresh()
		if isError(c.unify(fnT, Func{Params: args, Ret: ret}, n.Span())) {
			return Error{}
		}
		return ret
	case *can.Tuple:
		elems := make([]Type, len(n.Elems))
		for i, elem := range n.Elems {
			elems[i] = c.infer(elem)
		}
		return Tuple{Elems: elems}
	case *can.Lambda:
		params := make([]Type, len(n.Params))
		for i, param := range n.Params {
			params[i] = c.fresh()
			c.env[param.Bind] = params[i]
		}
		return Func{Params: params, Ret: c.infer(n.Body)}
	case *can.RuntimeError:
		return Error{}
	case *can.Empty:
		return Error{}
	}
	panic(fmt.Sprintf("types: unhandled node type %T", n))
}

// generalizeArith re-generalizes an arithmetic result: when the unified type
// is a numeric family over a still-unconstrained variable, the operation's
// result is a fresh bare variable rather than Num(*). A literal on its own
// stays Num(*); "1-2" infers "*".
func (c *checker) generalizeArith(t Type) Type {
	if isError(t) {
		return t
	}
	if num, ok := c.resolve(t).(Num); ok {
		if _, unbound := c.resolve(num.Elem).(Var); unbound {
			return c.fresh()
		}
	}
	return t
}

// resolve chases the substitution one level: a bound variable becomes its
// binding, everything else is returned as-is.
func (c *checker) resolve(t Type) Type {
	for {
		v, ok := t.(Var)
		if !ok {
			return t
		}
		bound, ok := c.subst[v.ID]
		if !ok {
			return t
		}
		t = bound
	}
}

// apply substitutes deeply, producing the final rendering of a type.
func (c *checker) apply(t Type) Type {
	switch t := c.resolve(t).(type) {
	case Num:
		return Num{Elem: c.apply(t.Elem)}
	case Func:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = c.apply(p)
		}
		return Func{Params: params, Ret: c.apply(t.Ret)}
	case Tuple:
		elems := make([]Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = c.apply(e)
		}
		return Tuple{Elems: elems}
	default:
		return t
	}
}

// unify makes a and b equal under the substitution and returns the unified
// type. The error type absorbs: unifying Error with anything succeeds as
// Error and binds nothing, so resolved siblings keep their types. A genuine
// shape conflict reports one TYPE MISMATCH at the given span and yields Error.
func (c *checker) unify(a, b Type, at lexer.Span) Type {
	a = c.resolve(a)
	b = c.resolve(b)
	if isError(a) || isError(b) {
		return Error{}
	}
	if av, ok := a.(Var); ok {
		return c.bindVar(av, b, at)
	}
	if bv, ok := b.(Var); ok {
		return c.bindVar(bv, a, at)
	}
	switch a := a.(type) {
	case Num:
		if b, ok := b.(Num); ok {
			return Num{Elem: c.unify(a.Elem, b.Elem, at)}
		}
	case Func:
		if b, ok := b.(Func); ok && len(a.Params) == len(b.Params) {
			params := make([]Type, len(a.Params))
			for i := range a.Params {
				params[i] = c.unify(a.Params[i], b.Params[i], at)
			}
			return Func{Params: params, Ret: c.unify(a.Ret, b.Ret, at)}
		}
	case Tuple:
		if b, ok := b.(Tuple); ok && len(a.Elems) == len(b.Elems) {
			elems := make([]Type, len(a.Elems))
			for i := range a.Elems {
				elems[i] = c.unify(a.Elems[i], b.Elems[i], at)
			}
			return Tuple{Elems: elems}
		}
	case Con:
		if b, ok := b.(Con); ok && a.Name == b.Name {
			return a
		}
	}
	return c.mismatch(a, b, at)
}

func (c *checker) bindVar(v Var, t Type, at lexer.Span) Type {
	if tv, ok := t.(Var); ok && tv.ID == v.ID {
		return v
	}
	if c.occurs(v, t) {
		return c.mismatch(v, t, at)
	}
	c.subst[v.ID] = t
	return t
}

func (c *checker) occurs(v Var, t Type) bool {
	switch t := c.resolve(t).(type) {
	case Var:
		return t.ID == v.ID
	case Num:
		return c.occurs(v, t.Elem)
	case Func:
		for _, p := range t.Params {
			if c.occurs(v, p) {
				return true
			}
		}
		return c.occurs(v, t.Ret)
	case Tuple:
		for _, e := range t.Elems {
			if c.occurs(v, e) {
				return true
			}
		}
	}
	return false
}

func (c *checker) mismatch(a, b Type, at lexer.Span) Type {
	c.diags = append(c.diags, diag.Diagnostic{
		Severity: diag.SeverityError,
		Category: diag.TypeMismatch,
		Code:     "type_mismatch",
		Message: fmt.Sprintf("This expression has type `%s`, but `%s` was needed.",
			Render(c.apply(b)), Render(c.apply(a))),
		Span: at,
	})
	return Error{}
}
