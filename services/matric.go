package services

import "strings"

var hndDepartments = map[string]string{
	"01": "Accountancy",
	"02": "Biochemistry",
	"03": "Business Administration",
	"04": "Computer Engineering",
	"05": "Computer Science",
	"06": "Electrical Engineering",
	"07": "Mass Communication",
	"08": "Microbiology",
}

var ndDepartments = map[string]string{
	"S":   "Science Laboratory Technology",
	"COS": "Computer Science",
	"COE": "Computer Engineering",
	"B":   "Business Administration",
	"EST": "Estate Management",
	"E":   "Electrical Engineering",
	"M":   "Mass Communication",
	"A":   "Accountancy",
	"MLT": "Medical Laboratory Technology",
}

// DepartmentAndLevel derives the department and level from the matric number
// format. HND matrics look like HND/23/01/001 with the department code in the
// third segment; ND matrics carry a department prefix, e.g. COS/023456.
func DepartmentAndLevel(matric string) (department, level string) {
	if strings.HasPrefix(strings.ToUpper(matric), "HND/") {
		parts := strings.Split(matric, "/")
		if len(parts) >= 3 {
			if dept, ok := hndDepartments[parts[2]]; ok {
				return dept, "HND"
			}
		}
		return "Unknown", "HND"
	}

	prefix := strings.ToUpper(strings.Split(matric, "/")[0])
	if dept, ok := ndDepartments[prefix]; ok {
		return dept, "ND"
	}
	return "Unknown", "ND"
}
