package rbac

// Default policy for the homework service. Parents author and review, children
// work and submit.
var RolePermissions = map[string][]string{
	"child": {
		"assignment:view",
		"submission:create",
		"submission:save",
		"submission:submit",
		"submission:view-own",
		"user:change_password",
		"scan:upload",
	},
	"parent": {
		"assignment:create",
		"assignment:view",
		"submission:view-all",
		"review:list",
		"users:create_child",
		"user:change_password",
	},
	"admin": {
		"*", // everything
	},
}
