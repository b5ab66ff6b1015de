package syntax

import (
	"cuelang.org/go/cue"

	"github.com/roach88/cbc/internal/ir"
)

// treeHash hashes the canonical JSON form of v under ir.DomainTree. null and
// {} hash alike since both mean an omitted node.
func treeHash(v cue.Value) (string, error) {
	tv, err := treeValue(v)
	if err != nil {
		return "", err
	}
	data, err := ir.MarshalCanonical(tv)
	if err != nil {
		return "", err
	}
	return ir.Digest(ir.DomainTree, data), nil
}

func treeValue(v cue.Value) (ir.Value, error) {
	switch v.Kind() {
	case cue.NullKind:
		return ir.VObject{}, nil

	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return ir.VBool(b), nil

	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return nil, errorAt(v, "integer out of range")
		}
		return ir.VInt(n), nil

	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return ir.VString(s), nil

	case cue.ListKind:
		arr := ir.VArray{}
		err := each(v, func(e cue.Value) error {
			ev, err := treeValue(e)
			if err != nil {
				return err
			}
			arr = append(arr, ev)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return arr, nil

	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		obj := ir.VObject{}
		for iter.Next() {
			fv, err := treeValue(iter.Value())
			if err != nil {
				return nil, err
			}
			obj[iter.Label()] = fv
		}
		return obj, nil
	}
	return nil, errorAt(v, "unsupported value kind %v", v.Kind())
}
