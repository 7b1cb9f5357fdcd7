package value

// Argument contract checks for builtin functions. The idx parameter is the
// zero-based position of the argument; diagnostics report it one-based.
// A value of kind Unknown stands for an argument that was not supplied, so
// the Opt variants accept it.

func argError(want string, idx int) error {
	return &ArgError{Want: want, Index: idx}
}

// CheckNoMoreArgs fails when a value is present past the last expected
// argument.
func CheckNoMoreArgs(args []Value, idx int) error {
	if idx < len(args) && args[idx].Kind != Unknown {
		return typeErrorf("too many arguments")
	}
	return nil
}

func CheckStringArg(args []Value, idx int) error {
	if args[idx].Kind != String {
		return argError("string", idx)
	}
	return nil
}

func CheckOptStringArg(args []Value, idx int) error {
	if args[idx].Kind == Unknown {
		return nil
	}
	return CheckStringArg(args, idx)
}

func CheckNonEmptyStringArg(args []Value, idx int) error {
	if err := CheckStringArg(args, idx); err != nil {
		return err
	}
	if args[idx].S == "" {
		return argError("non-empty string", idx)
	}
	return nil
}

func CheckNumberArg(args []Value, idx int) error {
	if args[idx].Kind != Number {
		return argError("number", idx)
	}
	return nil
}

func CheckOptNumberArg(args []Value, idx int) error {
	if args[idx].Kind == Unknown {
		return nil
	}
	return CheckNumberArg(args, idx)
}

// CheckBoolArg accepts a bool or the numbers 0 and 1.
func CheckBoolArg(args []Value, idx int) error {
	v := args[idx]
	if v.Kind == Bool || (v.Kind == Number && (v.N == 0 || v.N == 1)) {
		return nil
	}
	return argError("bool", idx)
}

func CheckOptBoolArg(args []Value, idx int) error {
	if args[idx].Kind == Unknown {
		return nil
	}
	return CheckBoolArg(args, idx)
}

func CheckFloatOrNumberArg(args []Value, idx int) error {
	k := args[idx].Kind
	if k != Float && k != Number {
		return argError("float or number", idx)
	}
	return nil
}

func CheckStringOrNumberArg(args []Value, idx int) error {
	k := args[idx].Kind
	if k != String && k != Number {
		return argError("string or number", idx)
	}
	return nil
}

func CheckOptStringOrNumberArg(args []Value, idx int) error {
	if args[idx].Kind == Unknown {
		return nil
	}
	return CheckStringOrNumberArg(args, idx)
}

func CheckBlobArg(args []Value, idx int) error {
	if args[idx].Kind != Blob {
		return argError("blob", idx)
	}
	return nil
}

func CheckListArg(args []Value, idx int) error {
	if args[idx].Kind != List {
		return argError("list", idx)
	}
	return nil
}

// CheckNonNilListArg additionally rejects a null list.
func CheckNonNilListArg(args []Value, idx int) error {
	if err := CheckListArg(args, idx); err != nil {
		return err
	}
	if args[idx].List == nil {
		return typeErrorf("non-null list required for argument %d", idx+1)
	}
	return nil
}

func CheckOptListArg(args []Value, idx int) error {
	if args[idx].Kind == Unknown {
		return nil
	}
	return CheckListArg(args, idx)
}

func CheckDictArg(args []Value, idx int) error {
	if args[idx].Kind != Dict {
		return argError("dict", idx)
	}
	return nil
}

// CheckNonNilDictArg additionally rejects a null dict.
func CheckNonNilDictArg(args []Value, idx int) error {
	if err := CheckDictArg(args, idx); err != nil {
		return err
	}
	if args[idx].Dict == nil {
		return typeErrorf("non-null dict required for argument %d", idx+1)
	}
	return nil
}

func CheckOptDictArg(args []Value, idx int) error {
	if args[idx].Kind == Unknown {
		return nil
	}
	return CheckDictArg(args, idx)
}

func CheckFuncArg(args []Value, idx int) error {
	if args[idx].Kind != Funcref {
		return argError("funcref", idx)
	}
	return nil
}

func CheckJobArg(args []Value, idx int) error {
	if args[idx].Kind != Job {
		return argError("job", idx)
	}
	return nil
}

func CheckChanOrJobArg(args []Value, idx int) error {
	k := args[idx].Kind
	if k != Channel && k != Job {
		return argError("channel or job", idx)
	}
	return nil
}

func CheckObjectArg(args []Value, idx int) error {
	if args[idx].Kind != Object {
		return argError("object", idx)
	}
	return nil
}

func CheckClassOrTypeAliasArg(args []Value, idx int) error {
	k := args[idx].Kind
	if k != Class && k != TypeAlias {
		return argError("class or typealias", idx)
	}
	return nil
}

func CheckStringOrListArg(args []Value, idx int) error {
	k := args[idx].Kind
	if k != String && k != List {
		return argError("string or list", idx)
	}
	return nil
}

func CheckOptStringOrListArg(args []Value, idx int) error {
	if args[idx].Kind == Unknown {
		return nil
	}
	return CheckStringOrListArg(args, idx)
}

func CheckStringOrBlobArg(args []Value, idx int) error {
	k := args[idx].Kind
	if k != String && k != Blob {
		return argError("string or blob", idx)
	}
	return nil
}

func CheckListOrBlobArg(args []Value, idx int) error {
	k := args[idx].Kind
	if k != List && k != Blob {
		return argError("list or blob", idx)
	}
	return nil
}

func CheckListOrDictArg(args []Value, idx int) error {
	k := args[idx].Kind
	if k != List && k != Dict {
		return argError("list or dict", idx)
	}
	return nil
}

func CheckListOrDictOrBlobArg(args []Value, idx int) error {
	k := args[idx].Kind
	if k != List && k != Dict && k != Blob {
		return argError("list, dict or blob", idx)
	}
	return nil
}

func CheckStringOrListOrDictArg(args []Value, idx int) error {
	k := args[idx].Kind
	if k != String && k != List && k != Dict {
		return argError("string, list or dict", idx)
	}
	return nil
}

func CheckStringOrFuncArg(args []Value, idx int) error {
	k := args[idx].Kind
	if k != String && k != Funcref {
		return argError("string or funcref", idx)
	}
	return nil
}

func CheckListOrDictOrBlobOrStringArg(args []Value, idx int) error {
	k := args[idx].Kind
	if k != List && k != Dict && k != Blob && k != String {
		return argError("list, dict, blob or string", idx)
	}
	return nil
}
