package services

import "testing"

func TestDepartmentAndLevel(t *testing.T) {
	cases := []struct {
		matric     string
		department string
		level      string
	}{
		{"HND/23/01/001", "Accountancy", "HND"},
		{"HND/23/05/010", "Computer Science", "HND"},
		{"HND/23/99/010", "Unknown", "HND"},
		{"COS/023456", "Computer Science", "ND"},
		{"Cos/023456", "Computer Science", "ND"},
		{"MLT/004521", "Medical Laboratory Technology", "ND"},
		{"ZZZ/000001", "Unknown", "ND"},
	}

	for _, c := range cases {
		t.Run(c.matric, func(t *testing.T) {
			department, level := DepartmentAndLevel(c.matric)
			if department != c.department || level != c.level {
				t.Errorf("DepartmentAndLevel(%q) = %q, %q; want %q, %q",
					c.matric, department, level, c.department, c.level)
			}
		})
	}
}
