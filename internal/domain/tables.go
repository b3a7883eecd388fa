package domain

// Tables migrated by the database catalog backend
var Tables = []interface{}{
	&Product{},
}
