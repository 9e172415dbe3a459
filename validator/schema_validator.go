package validator

import "github.com/Oudwins/zog"

var CredentialsShape = zog.Shape{
	"Username": zog.String().Min(1).Required(),
	"Password": zog.String().Min(1).Required(),
}

// RegisterSchema and LoginSchema share the same shape; email stays optional
// on registration so it is deliberately absent here.
var (
	RegisterSchema = zog.Struct(CredentialsShape)
	LoginSchema    = zog.Struct(CredentialsShape)
)
