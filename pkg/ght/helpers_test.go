package ght

func testSchema(t interface{ Fatal(args ...any) }) Schema {
	dims := []Dimension{
		{Position: 0, Name: "X", Type: TypeF64, Scale: 1, Offset: 0},
		{Position: 1, Name: "Y", Type: TypeF64, Scale: 1, Offset: 0},
		{Position: 2, Name: "Intensity", Type: TypeU16, Scale: 1, Offset: 0},
		{Position: 3, Name: "Classification", Type: TypeU8, Scale: 1, Offset: 0},
	}
	s, err := NewSchema(dims)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func mustAttr(dim Dimension, v float64) Attribute {
	return NewAttributeFromDouble(dim, v, nil)
}
