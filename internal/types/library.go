package types

// Библиотечные типы: ровно то подмножество BCL, которое нужно биндеру и правилам.

func (in *Interner) library(kind Kind, ns, name, keyword string, base TypeID) TypeID {
	return in.RegisterNominal(kind, NominalInfo{
		Name:      name,
		Namespace: ns,
		Keyword:   keyword,
		Base:      base,
		Library:   true,
	})
}

func method(name string, ret TypeID, arity int) Member {
	return Member{Name: name, Kind: MemberMethod, Type: ret, Arity: arity}
}

func staticMethod(name string, ret TypeID, arity int) Member {
	m := method(name, ret, arity)
	m.Static = true
	return m
}

func property(name string, typ TypeID) Member {
	return Member{Name: name, Kind: MemberProperty, Type: typ}
}

func staticProperty(name string, typ TypeID) Member {
	return Member{Name: name, Kind: MemberProperty, Type: typ, Static: true}
}

func (in *Interner) seedLibrary() {
	b := &in.builtins
	b.Void = in.internRaw(Type{Kind: KindVoid})
	in.keywords["void"] = b.Void

	b.Object = in.library(KindClass, "System", "Object", "object", NoTypeID)
	b.ValueType = in.library(KindClass, "System", "ValueType", "", b.Object)
	b.String = in.library(KindClass, "System", "String", "string", b.Object)
	b.Array = in.library(KindClass, "System", "Array", "", b.Object)
	b.Enum = in.library(KindClass, "System", "Enum", "", b.ValueType)
	b.Type = in.library(KindClass, "System", "Type", "", b.Object)
	b.Exception = in.library(KindClass, "System", "Exception", "", b.Object)

	b.Bool = in.library(KindStruct, "System", "Boolean", "bool", b.ValueType)
	b.Char = in.library(KindStruct, "System", "Char", "char", b.ValueType)
	b.Byte = in.library(KindStruct, "System", "Byte", "byte", b.ValueType)
	b.Short = in.library(KindStruct, "System", "Int16", "short", b.ValueType)
	b.Int = in.library(KindStruct, "System", "Int32", "int", b.ValueType)
	b.Long = in.library(KindStruct, "System", "Int64", "long", b.ValueType)
	b.Float = in.library(KindStruct, "System", "Single", "float", b.ValueType)
	b.Double = in.library(KindStruct, "System", "Double", "double", b.ValueType)
	b.Decimal = in.library(KindStruct, "System", "Decimal", "decimal", b.ValueType)
	b.DateTime = in.library(KindStruct, "System", "DateTime", "", b.ValueType)
	b.Guid = in.library(KindStruct, "System", "Guid", "", b.ValueType)

	b.StringBuilder = in.library(KindClass, "System.Text", "StringBuilder", "", b.Object)
	b.Console = in.library(KindClass, "System", "Console", "", b.Object)
	b.TextWriter = in.library(KindClass, "System.IO", "TextWriter", "", b.Object)
	b.StreamWriter = in.library(KindClass, "System.IO", "StreamWriter", "", b.TextWriter)
	b.StringWriter = in.library(KindClass, "System.IO", "StringWriter", "", b.TextWriter)

	obj := []Member{
		method("ToString", b.String, 0),
		method("Equals", b.Bool, 1),
		method("GetHashCode", b.Int, 0),
		method("GetType", b.Type, 0),
		staticMethod("ReferenceEquals", b.Bool, 2),
	}
	for _, m := range obj {
		in.AddMember(b.Object, m)
	}

	str := []Member{
		method("ToString", b.String, -1),
		staticMethod("Format", b.String, -1),
		staticMethod("Concat", b.String, -1),
		staticMethod("Join", b.String, -1),
		staticMethod("IsNullOrEmpty", b.Bool, 1),
		staticMethod("IsNullOrWhiteSpace", b.Bool, 1),
		{Name: "Empty", Kind: MemberField, Type: b.String, Static: true},
		property("Length", b.Int),
		method("Substring", b.String, -1),
		method("ToUpper", b.String, -1),
		method("ToLower", b.String, -1),
		method("Trim", b.String, -1),
		method("Replace", b.String, 2),
		method("Contains", b.Bool, -1),
		method("StartsWith", b.Bool, -1),
		method("EndsWith", b.Bool, -1),
		method("IndexOf", b.Int, -1),
		method("PadLeft", b.String, -1),
		method("PadRight", b.String, -1),
		method("Split", in.ArrayOf(b.String), -1),
		method("ToCharArray", in.ArrayOf(b.Char), -1),
	}
	for _, m := range str {
		in.AddMember(b.String, m)
	}

	for _, t := range []TypeID{b.Bool, b.Char, b.Byte, b.Short, b.Int, b.Long, b.Float, b.Double, b.Decimal, b.DateTime, b.Guid} {
		in.AddMember(t, method("ToString", b.String, -1))
		in.AddMember(t, method("CompareTo", b.Int, 1))
		in.AddMember(t, staticMethod("Parse", t, -1))
		in.AddMember(t, staticMethod("TryParse", b.Bool, -1))
	}
	for _, t := range []TypeID{b.Byte, b.Short, b.Int, b.Long, b.Float, b.Double, b.Decimal, b.Char} {
		in.AddMember(t, Member{Name: "MaxValue", Kind: MemberField, Type: t, Static: true})
		in.AddMember(t, Member{Name: "MinValue", Kind: MemberField, Type: t, Static: true})
	}
	in.AddMember(b.DateTime, staticProperty("Now", b.DateTime))
	in.AddMember(b.DateTime, staticProperty("UtcNow", b.DateTime))
	in.AddMember(b.Guid, staticMethod("NewGuid", b.Guid, 0))

	in.AddMember(b.Enum, method("ToString", b.String, -1))
	in.AddMember(b.Enum, method("HasFlag", b.Bool, 1))
	in.AddMember(b.Array, property("Length", b.Int))
	in.AddMember(b.Type, method("ToString", b.String, 0))
	in.AddMember(b.Type, property("Name", b.String))
	in.AddMember(b.Type, property("FullName", b.String))
	in.AddMember(b.Exception, method("ToString", b.String, 0))
	in.AddMember(b.Exception, property("Message", b.String))

	sb := b.StringBuilder
	for _, name := range []string{"Append", "AppendLine", "AppendFormat", "Insert", "Clear"} {
		in.AddMember(sb, method(name, sb, -1))
	}
	in.AddMember(sb, method("ToString", b.String, -1))
	in.AddMember(sb, property("Length", b.Int))

	for _, name := range []string{"Write", "WriteLine"} {
		in.AddMember(b.Console, staticMethod(name, b.Void, -1))
		in.AddMember(b.TextWriter, method(name, b.Void, -1))
	}
	in.AddMember(b.Console, staticMethod("ReadLine", b.String, 0))
	in.AddMember(b.Console, staticProperty("Out", b.TextWriter))
	in.AddMember(b.Console, staticProperty("Error", b.TextWriter))
	in.AddMember(b.TextWriter, method("Flush", b.Void, 0))
	in.AddMember(b.TextWriter, method("Dispose", b.Void, 0))
	in.AddMember(b.StringWriter, method("ToString", b.String, 0))
}
