package handlers

import "testing"

func validPayload() studentPayload {
	return studentPayload{
		FullName:    "Abebe Kebede",
		Grade:       "3",
		Village:     "Amibicho",
		ParentPhone: "+251911111111",
		Sex:         "Male",
		Age:         9,
	}
}

func TestValidateStudent(t *testing.T) {
	t.Run("typical registration passes", func(t *testing.T) {
		p := validPayload()
		p.normalize()
		if errs := validateStudent(&p); errs != nil {
			t.Errorf("unexpected errors: %v", errs)
		}
	})

	tests := []struct {
		name      string
		mutate    func(*studentPayload)
		wantField string
	}{
		{name: "empty name", mutate: func(p *studentPayload) { p.FullName = "" }, wantField: "full_name"},
		{name: "numeric name", mutate: func(p *studentPayload) { p.FullName = "1234" }, wantField: "full_name"},
		{name: "grade out of range", mutate: func(p *studentPayload) { p.Grade = "7" }, wantField: "grade"},
		{name: "lowercase kg grade", mutate: func(p *studentPayload) { p.Grade = "kg1" }, wantField: "grade"},
		{name: "missing village", mutate: func(p *studentPayload) { p.Village = "  " }, wantField: "village"},
		{name: "short phone", mutate: func(p *studentPayload) { p.ParentPhone = "1234" }, wantField: "parent_phone"},
		{name: "phone with letters", mutate: func(p *studentPayload) { p.ParentPhone = "+2519abc1111" }, wantField: "parent_phone"},
		{name: "bad sex value", mutate: func(p *studentPayload) { p.Sex = "M" }, wantField: "sex"},
		{name: "age too small", mutate: func(p *studentPayload) { p.Age = 2 }, wantField: "age"},
		{name: "age too big", mutate: func(p *studentPayload) { p.Age = 25 }, wantField: "age"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			tt.mutate(&p)
			p.normalize()
			errs := validateStudent(&p)
			if errs == nil {
				t.Fatal("expected validation errors")
			}
			if _, ok := errs[tt.wantField]; !ok {
				t.Errorf("errs = %v, want key %q", errs, tt.wantField)
			}
		})
	}
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	p := studentPayload{FullName: "  Abebe   Kebede ", Grade: " 3 ", Village: " Amibicho ", ParentPhone: " +251911111111 ", Sex: " Male "}
	p.normalize()
	if p.FullName != "Abebe Kebede" {
		t.Errorf("FullName = %q", p.FullName)
	}
	if p.Grade != "3" || p.Village != "Amibicho" || p.Sex != "Male" {
		t.Errorf("normalize left spaces: %+v", p)
	}
}
