package domain

// Operation identifies a catalog operation for access-control decisions.
type Operation string

const (
	OpCreate   Operation = "create"
	OpList     Operation = "list"
	OpSearch   Operation = "search"
	OpUpdate   Operation = "update"
	OpDelete   Operation = "delete"
	OpPurchase Operation = "purchase"
	OpRestock  Operation = "restock"
)

// permissions is the full access-control table. Any (role, operation) pair
// absent from the table is denied.
var permissions = map[Role]map[Operation]bool{
	RoleUser: {
		OpCreate:   true,
		OpList:     true,
		OpSearch:   true,
		OpUpdate:   true,
		OpPurchase: true,
	},
	RoleAdmin: {
		OpCreate:   true,
		OpList:     true,
		OpSearch:   true,
		OpUpdate:   true,
		OpDelete:   true,
		OpPurchase: true,
		OpRestock:  true,
	},
}

// Allow reports whether role may perform op.
func Allow(role Role, op Operation) bool {
	return permissions[role][op]
}

// ForbiddenMessage returns the client-facing message for a denied operation.
func ForbiddenMessage(op Operation) string {
	switch op {
	case OpDelete:
		return "Only admin can delete sweets"
	case OpRestock:
		return "Only admin can restock sweets"
	default:
		return "Only admin can perform this action"
	}
}
