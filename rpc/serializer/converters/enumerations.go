package converters

import (
	"github.com/ValentinKolb/redmine/lib/types"
	"github.com/ValentinKolb/redmine/rpc/serializer/wire"
)

// --------------------------------------------------------------------------
// Trackers & statuses
// --------------------------------------------------------------------------

func readTracker(r wire.IReader) (*types.Tracker, error) {
	return readObject(r, func(v *types.Tracker, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "name":
			v.Name, err = wire.ReadString(r)
		case "default_status":
			v.DefaultStatus, err = readRef(r)
		case "description":
			v.Description, err = wire.ReadString(r)
		case "enabled_standard_fields":
			v.EnabledStandardFields, err = readList(r, readTrackerCoreField)
		}
		return err
	})
}

func writeTracker(w wire.IWriter, name string, v *types.Tracker) {
	w.StartObject(name)
	w.Field("id", wire.Int(v.ID))
	w.Field("name", wire.String(v.Name))
	writeRef(w, "default_status", v.DefaultStatus)
	wire.WriteIfNotDefault(w, "description", v.Description, wire.String)
	writeList(w, "enabled_standard_fields", "field", v.EnabledStandardFields, writeTrackerCoreField)
	w.EndObject()
}

func readTrackerCoreField(r wire.IReader) (*types.TrackerCoreField, error) {
	return readText(r, func(s string) types.TrackerCoreField {
		return types.TrackerCoreField{Name: s}
	})
}

func writeTrackerCoreField(w wire.IWriter, name string, v *types.TrackerCoreField) {
	w.Field(name, wire.String(v.Name))
}

// readIssueStatus reads both the standalone status (child elements) and the
// status embedded in an issue (attributes)
func readIssueStatus(r wire.IReader) (*types.IssueStatus, error) {
	return readObject(r, func(v *types.IssueStatus, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "name":
			v.Name, err = wire.ReadString(r)
		case "is_default":
			v.IsDefault, err = wire.ReadBool(r)
		case "is_closed":
			v.IsClosed, err = wire.ReadBool(r)
		case "description":
			v.Description, err = wire.ReadString(r)
		}
		return err
	})
}

func writeIssueStatus(w wire.IWriter, name string, v *types.IssueStatus) {
	w.StartObject(name)
	w.Field("id", wire.Int(v.ID))
	w.Field("name", wire.String(v.Name))
	w.Field("is_default", wire.Bool(v.IsDefault))
	w.Field("is_closed", wire.Bool(v.IsClosed))
	wire.WriteIfNotDefault(w, "description", v.Description, wire.String)
	w.EndObject()
}

// --------------------------------------------------------------------------
// Enumerations
// --------------------------------------------------------------------------

// enumeration is the shape shared by priorities, activities and document categories
type enumeration interface {
	types.IssuePriority | types.TimeEntryActivity | types.DocumentCategory
}

func readEnumeration[T enumeration](r wire.IReader) (*T, error) {
	var (
		id                  int
		name                string
		isDefault, isActive bool
	)
	v, err := readObject(r, func(_ *T, field string) (err error) {
		switch field {
		case "id":
			id, err = wire.ReadInt(r)
		case "name":
			name, err = wire.ReadString(r)
		case "is_default":
			isDefault, err = wire.ReadBool(r)
		case "active":
			isActive, err = wire.ReadBool(r)
		}
		return err
	})
	if err != nil || v == nil {
		return nil, err
	}
	*v = T(types.IssuePriority{ID: id, Name: name, IsDefault: isDefault, IsActive: isActive})
	return v, nil
}

func writeEnumeration[T enumeration](w wire.IWriter, name string, v *T) {
	e := types.IssuePriority(*v)
	w.StartObject(name)
	w.Field("id", wire.Int(e.ID))
	w.Field("name", wire.String(e.Name))
	w.Field("is_default", wire.Bool(e.IsDefault))
	w.Field("active", wire.Bool(e.IsActive))
	w.EndObject()
}

// --------------------------------------------------------------------------
// Time entries
// --------------------------------------------------------------------------

func readTimeEntry(r wire.IReader) (*types.TimeEntry, error) {
	return readObject(r, func(v *types.TimeEntry, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "project":
			v.Project, err = readRef(r)
		case "issue":
			v.Issue, err = readRef(r)
		case "user":
			v.User, err = readRef(r)
		case "activity":
			v.Activity, err = readRef(r)
		case "hours":
			v.Hours, err = wire.ReadDecimal(r)
		case "comments":
			v.Comments, err = wire.ReadString(r)
		case "spent_on":
			v.SpentOn, err = wire.ReadNullableDate(r)
		case "created_on":
			v.CreatedOn, err = wire.ReadNullableDateTime(r)
		case "updated_on":
			v.UpdatedOn, err = wire.ReadNullableDateTime(r)
		case "custom_fields":
			v.CustomFields, err = readList(r, readIssueCustomField)
		}
		return err
	})
}

func writeTimeEntry(w wire.IWriter, name string, v *types.TimeEntry) {
	w.StartObject(name)
	wire.WriteIfNotDefault(w, "id", v.ID, wire.Int)
	writeRef(w, "project", v.Project)
	writeRef(w, "issue", v.Issue)
	writeRef(w, "user", v.User)
	writeRef(w, "activity", v.Activity)
	w.Field("hours", wire.Float(v.Hours))
	wire.WriteIfNotDefault(w, "comments", v.Comments, wire.String)
	wire.WriteIfNotNil(w, "spent_on", v.SpentOn, wire.Date)
	wire.WriteIfNotNil(w, "created_on", v.CreatedOn, wire.DateTime)
	wire.WriteIfNotNil(w, "updated_on", v.UpdatedOn, wire.DateTime)
	writeList(w, "custom_fields", "custom_field", v.CustomFields, writeIssueCustomField)

	// request keys
	writeRefID(w, "project_id", v.Project)
	writeRefID(w, "issue_id", v.Issue)
	writeRefID(w, "user_id", v.User)
	writeRefID(w, "activity_id", v.Activity)
	w.EndObject()
}

// --------------------------------------------------------------------------
// Custom field definitions
// --------------------------------------------------------------------------

func readCustomField(r wire.IReader) (*types.CustomField, error) {
	return readObject(r, func(v *types.CustomField, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "name":
			v.Name, err = wire.ReadString(r)
		case "description":
			v.Description, err = wire.ReadString(r)
		case "customized_type":
			v.CustomizedType, err = wire.ReadString(r)
		case "field_format":
			v.FieldFormat, err = wire.ReadString(r)
		case "regexp":
			v.Regexp, err = wire.ReadString(r)
		case "min_length":
			v.MinLength, err = wire.ReadNullableInt(r)
		case "max_length":
			v.MaxLength, err = wire.ReadNullableInt(r)
		case "is_required":
			v.IsRequired, err = wire.ReadBool(r)
		case "is_filter":
			v.IsFilter, err = wire.ReadBool(r)
		case "searchable":
			v.Searchable, err = wire.ReadBool(r)
		case "multiple":
			v.Multiple, err = wire.ReadBool(r)
		case "default_value":
			v.DefaultValue, err = wire.ReadString(r)
		case "visible":
			v.Visible, err = wire.ReadBool(r)
		case "editable":
			v.Editable, err = wire.ReadBool(r)
		case "possible_values":
			v.PossibleValues, err = readList(r, readCustomFieldPossibleValue)
		case "trackers":
			v.Trackers, err = readList(r, readRefAs[types.TrackerCustomField])
		case "roles":
			v.Roles, err = readList(r, readRefAs[types.CustomFieldRole])
		}
		return err
	})
}

func writeCustomField(w wire.IWriter, name string, v *types.CustomField) {
	w.StartObject(name)
	w.Field("id", wire.Int(v.ID))
	w.Field("name", wire.String(v.Name))
	wire.WriteIfNotDefault(w, "description", v.Description, wire.String)
	w.Field("customized_type", wire.String(v.CustomizedType))
	w.Field("field_format", wire.String(v.FieldFormat))
	wire.WriteIfNotDefault(w, "regexp", v.Regexp, wire.String)
	wire.WriteIfNotNil(w, "min_length", v.MinLength, wire.Int)
	wire.WriteIfNotNil(w, "max_length", v.MaxLength, wire.Int)
	w.Field("is_required", wire.Bool(v.IsRequired))
	w.Field("is_filter", wire.Bool(v.IsFilter))
	w.Field("searchable", wire.Bool(v.Searchable))
	w.Field("multiple", wire.Bool(v.Multiple))
	wire.WriteIfNotDefault(w, "default_value", v.DefaultValue, wire.String)
	w.Field("visible", wire.Bool(v.Visible))
	w.Field("editable", wire.Bool(v.Editable))
	writeList(w, "possible_values", "possible_value", v.PossibleValues, writeCustomFieldPossibleValue)
	writeList(w, "trackers", "tracker", v.Trackers, writeRefAs[types.TrackerCustomField])
	writeList(w, "roles", "role", v.Roles, writeRefAs[types.CustomFieldRole])
	w.EndObject()
}

func readCustomFieldPossibleValue(r wire.IReader) (*types.CustomFieldPossibleValue, error) {
	return readObject(r, func(v *types.CustomFieldPossibleValue, field string) (err error) {
		switch field {
		case "value":
			v.Value, err = wire.ReadString(r)
		case "label":
			v.Label, err = wire.ReadString(r)
		}
		return err
	})
}

func writeCustomFieldPossibleValue(w wire.IWriter, name string, v *types.CustomFieldPossibleValue) {
	w.StartObject(name)
	w.Field("value", wire.String(v.Value))
	wire.WriteIfNotDefault(w, "label", v.Label, wire.String)
	w.EndObject()
}

// --------------------------------------------------------------------------
// Queries, search & errors
// --------------------------------------------------------------------------

func readQuery(r wire.IReader) (*types.Query, error) {
	return readObject(r, func(v *types.Query, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "name":
			v.Name, err = wire.ReadString(r)
		case "is_public":
			v.IsPublic, err = wire.ReadBool(r)
		case "project_id":
			v.ProjectID, err = wire.ReadNullableInt(r)
		}
		return err
	})
}

func writeQuery(w wire.IWriter, name string, v *types.Query) {
	w.StartObject(name)
	w.Field("id", wire.Int(v.ID))
	w.Field("name", wire.String(v.Name))
	w.Field("is_public", wire.Bool(v.IsPublic))
	wire.WriteIfNotNil(w, "project_id", v.ProjectID, wire.Int)
	w.EndObject()
}

func readSearch(r wire.IReader) (*types.Search, error) {
	return readObject(r, func(v *types.Search, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "title":
			v.Title, err = wire.ReadString(r)
		case "type":
			v.Type, err = wire.ReadString(r)
		case "url":
			v.URL, err = wire.ReadString(r)
		case "description":
			v.Description, err = wire.ReadString(r)
		case "datetime":
			v.DateTime, err = wire.ReadNullableDateTime(r)
		}
		return err
	})
}

func writeSearch(w wire.IWriter, name string, v *types.Search) {
	w.StartObject(name)
	w.Field("id", wire.Int(v.ID))
	w.Field("title", wire.String(v.Title))
	w.Field("type", wire.String(v.Type))
	w.Field("url", wire.String(v.URL))
	wire.WriteIfNotDefault(w, "description", v.Description, wire.String)
	wire.WriteIfNotNil(w, "datetime", v.DateTime, wire.DateTime)
	w.EndObject()
}

func readError(r wire.IReader) (*types.Error, error) {
	return readText(r, func(s string) types.Error {
		return types.Error{Info: s}
	})
}

func writeError(w wire.IWriter, name string, v *types.Error) {
	w.Field(name, wire.String(v.Info))
}
