package constants

// Canonical field names the extractor always attempts. Dynamically discovered
// fields use snake_case keys outside this set.
const (
	FieldName         = "name"
	FieldFirstName    = "first_name"
	FieldMiddleName   = "middle_name"
	FieldLastName     = "last_name"
	FieldAge          = "age"
	FieldGender       = "gender"
	FieldPhone        = "phone"
	FieldEmail        = "email"
	FieldAddress      = "address"
	FieldAddressLine1 = "address_line1"
	FieldAddressLine2 = "address_line2"
	FieldCity         = "city"
	FieldState        = "state"
	FieldCountry      = "country"
	FieldDateOfBirth  = "date_of_birth"
	FieldParentsName  = "parents_name"
	FieldOccupation   = "occupation"
	FieldPinCode      = "pin_code"
	FieldAadhaar      = "aadhaar"
	FieldPAN          = "pan"
	FieldPassport     = "passport"
)

// FieldType selects the cleaning rules applied to an extracted value.
type FieldType string

const (
	TypeName    FieldType = "name"
	TypeEmail   FieldType = "email"
	TypePhone   FieldType = "phone"
	TypeDate    FieldType = "date"
	TypeNumber  FieldType = "number"
	TypeGeneric FieldType = "generic"
)

var fieldTypes = map[string]FieldType{
	FieldName:        TypeName,
	FieldFirstName:   TypeName,
	FieldMiddleName:  TypeName,
	FieldLastName:    TypeName,
	FieldParentsName: TypeName,
	FieldEmail:       TypeEmail,
	FieldPhone:       TypePhone,
	FieldDateOfBirth: TypeDate,
	FieldAge:         TypeNumber,
	FieldPinCode:     TypeNumber,
	// aadhaar/pan/passport keep their canonical formatting (spaces, letters),
	// so they clean as generic rather than number.
}

// TypeOfField returns the cleaning class for a field name, TypeGeneric when
// the field is not one of the canonical typed fields.
func TypeOfField(field string) FieldType {
	if t, ok := fieldTypes[field]; ok {
		return t
	}
	return TypeGeneric
}
