package models

type ServiceCategory string
type Urgency string
type UserRole string

const (
	CategoryPlumbing    ServiceCategory = "plumbing"
	CategoryElectrical  ServiceCategory = "electrical"
	CategoryMaid        ServiceCategory = "maid"
	CategoryCook        ServiceCategory = "cook"
	CategoryCleaning    ServiceCategory = "cleaning"
	CategoryGardening   ServiceCategory = "gardening"
	CategorySecurity    ServiceCategory = "security"
	CategoryMaintenance ServiceCategory = "maintenance"
	CategoryOther       ServiceCategory = "other"

	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"

	RoleAdmin       UserRole = "admin"
	RoleResident    UserRole = "resident"
	RoleVolunteer   UserRole = "volunteer"
	RoleStaff       UserRole = "staff"
	RoleManager     UserRole = "manager"
	RoleTechnician  UserRole = "technician"
	RoleCook        UserRole = "cook"
	RoleMaid        UserRole = "maid"
	RoleSecurity    UserRole = "security"
	RoleGardener    UserRole = "gardener"
	RolePlumber     UserRole = "plumber"
	RoleElectrician UserRole = "electrician"
	RoleCleaner     UserRole = "cleaner"
	RoleMaintenance UserRole = "maintenance"
	RoleCustom      UserRole = "custom"
)

// ServiceCategories is the closed set of request categories. The request
// collection validator is generated from the same list.
var ServiceCategories = []ServiceCategory{
	CategoryPlumbing,
	CategoryElectrical,
	CategoryMaid,
	CategoryCook,
	CategoryCleaning,
	CategoryGardening,
	CategorySecurity,
	CategoryMaintenance,
	CategoryOther,
}

var Urgencies = []Urgency{UrgencyLow, UrgencyMedium, UrgencyHigh}

var UserRoles = []UserRole{
	RoleAdmin, RoleResident, RoleVolunteer, RoleStaff, RoleManager,
	RoleTechnician, RoleCook, RoleMaid, RoleSecurity, RoleGardener,
	RolePlumber, RoleElectrician, RoleCleaner, RoleMaintenance, RoleCustom,
}

func (c ServiceCategory) IsValid() bool {
	for _, v := range ServiceCategories {
		if v == c {
			return true
		}
	}
	return false
}

func (u Urgency) IsValid() bool {
	for _, v := range Urgencies {
		if v == u {
			return true
		}
	}
	return false
}

func (r UserRole) IsValid() bool {
	for _, v := range UserRoles {
		if v == r {
			return true
		}
	}
	return false
}

func CategoryValues() []string {
	values := make([]string, len(ServiceCategories))
	for i, c := range ServiceCategories {
		values[i] = string(c)
	}
	return values
}

func UrgencyValues() []string {
	values := make([]string, len(Urgencies))
	for i, u := range Urgencies {
		values[i] = string(u)
	}
	return values
}

func RoleValues() []string {
	values := make([]string, len(UserRoles))
	for i, r := range UserRoles {
		values[i] = string(r)
	}
	return values
}
