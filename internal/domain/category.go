package domain

// CategoryKeys lists the recognized category keys in their stable order.
// The key-to-identifier table itself is injected via configuration.
var CategoryKeys = []string{
	"hardware",
	"software",
	"network",
	"email",
	"printer",
	"access",
	"backup",
	"other",
}

// CategoryFallbackKey absorbs unrecognized category values at creation time.
const CategoryFallbackKey = "other"
