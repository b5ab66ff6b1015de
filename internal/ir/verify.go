package ir

import "fmt"

// VerifyLabels checks that every label f jumps to is defined exactly once in
// f's body and that no label is defined twice.
func VerifyLabels(f DefinedFunc) error {
	defined := make(map[Label]int)
	for _, s := range f.Body {
		if l, ok := s.(*LabelStmt); ok {
			if defined[l.Label] > 0 {
				return fmt.Errorf("%s: label %s defined twice", f.Name, l.Label)
			}
			defined[l.Label]++
		}
	}

	check := func(l Label) error {
		if defined[l] == 0 {
			return fmt.Errorf("%s: jump to undefined label %s", f.Name, l)
		}
		return nil
	}
	for _, s := range f.Body {
		switch s := s.(type) {
		case *Jump:
			if err := check(s.Target); err != nil {
				return err
			}
		case *CJump:
			if err := check(s.Then); err != nil {
				return err
			}
			if err := check(s.Else); err != nil {
				return err
			}
		}
	}
	return nil
}

// Verify runs VerifyLabels on every function in p.
func Verify(p *Program) error {
	for _, f := range p.Funcs {
		if err := VerifyLabels(f); err != nil {
			return err
		}
	}
	return nil
}
