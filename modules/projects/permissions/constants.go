package permissions

// Permission names as granted to roles in the authorization role file.
const (
	ViewProject      = "view_project"
	ViewWorkPackages = "view_work_packages"
	AddWorkPackages  = "add_work_packages"
	ManageVersions   = "manage_versions"
	ManageMembers    = "manage_members"
	LogTime          = "log_time"
	ViewCostRates    = "view_cost_rates"
)
