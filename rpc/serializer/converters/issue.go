package converters

import (
	"github.com/ValentinKolb/redmine/lib/types"
	"github.com/ValentinKolb/redmine/rpc/serializer/wire"
)

// --------------------------------------------------------------------------
// Issue
// --------------------------------------------------------------------------

func readIssue(r wire.IReader) (*types.Issue, error) {
	return readObject(r, func(v *types.Issue, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "project":
			v.Project, err = readRef(r)
		case "tracker":
			v.Tracker, err = readRef(r)
		case "status":
			v.Status, err = readIssueStatus(r)
		case "priority":
			v.Priority, err = readRef(r)
		case "author":
			v.Author, err = readRef(r)
		case "category":
			v.Category, err = readRef(r)
		case "fixed_version":
			v.FixedVersion, err = readRef(r)
		case "assigned_to":
			v.AssignedTo, err = readRef(r)
		case "parent":
			v.Parent, err = readRef(r)
		case "subject":
			v.Subject, err = wire.ReadString(r)
		case "description":
			v.Description, err = wire.ReadString(r)
		case "start_date":
			v.StartDate, err = wire.ReadNullableDate(r)
		case "due_date":
			v.DueDate, err = wire.ReadNullableDate(r)
		case "done_ratio":
			v.DoneRatio, err = wire.ReadNullableInt(r)
		case "is_private":
			v.IsPrivate, err = wire.ReadBool(r)
		case "estimated_hours":
			v.EstimatedHours, err = wire.ReadNullableFloat(r)
		case "total_estimated_hours":
			v.TotalEstimatedHours, err = wire.ReadNullableFloat(r)
		case "spent_hours":
			v.SpentHours, err = wire.ReadNullableFloat(r)
		case "total_spent_hours":
			v.TotalSpentHours, err = wire.ReadNullableFloat(r)
		case "custom_fields":
			v.CustomFields, err = readList(r, readIssueCustomField)
		case "created_on":
			v.CreatedOn, err = wire.ReadNullableDateTime(r)
		case "updated_on":
			v.UpdatedOn, err = wire.ReadNullableDateTime(r)
		case "closed_on":
			v.ClosedOn, err = wire.ReadNullableDateTime(r)
		case "notes":
			v.Notes, err = wire.ReadString(r)
		case "private_notes":
			v.PrivateNotes, err = wire.ReadBool(r)
		case "uploads":
			v.Uploads, err = readList(r, readUpload)
		case "journals":
			v.Journals, err = readList(r, readJournal)
		case "changesets":
			v.ChangeSets, err = readList(r, readChangeSet)
		case "attachments":
			v.Attachments, err = readList(r, readAttachment)
		case "relations":
			v.Relations, err = readList(r, readIssueRelation)
		case "children":
			v.Children, err = readList(r, readIssueChild)
		case "watchers":
			v.Watchers, err = readList(r, readRefAs[types.Watcher])
		case "allowed_statuses":
			v.AllowedStatuses, err = readList(r, readIssueAllowedStatus)
		}
		return err
	})
}

func writeIssue(w wire.IWriter, name string, v *types.Issue) {
	w.StartObject(name)
	wire.WriteIfNotDefault(w, "id", v.ID, wire.Int)
	writeRef(w, "project", v.Project)
	writeRef(w, "tracker", v.Tracker)
	writeStatusRef(w, "status", v.Status)
	writeRef(w, "priority", v.Priority)
	writeRef(w, "author", v.Author)
	writeRef(w, "category", v.Category)
	writeRef(w, "fixed_version", v.FixedVersion)
	writeRef(w, "assigned_to", v.AssignedTo)
	writeRef(w, "parent", v.Parent)
	w.Field("subject", wire.String(v.Subject))
	wire.WriteIfNotDefault(w, "description", v.Description, wire.String)
	wire.WriteDateOrEmpty(w, "start_date", v.StartDate)
	wire.WriteDateOrEmpty(w, "due_date", v.DueDate)
	wire.WriteIfNotNil(w, "done_ratio", v.DoneRatio, wire.Int)
	w.Field("is_private", wire.Bool(v.IsPrivate))
	wire.WriteIfNotNil(w, "estimated_hours", v.EstimatedHours, wire.Float)
	wire.WriteIfNotNil(w, "total_estimated_hours", v.TotalEstimatedHours, wire.Float)
	wire.WriteIfNotNil(w, "spent_hours", v.SpentHours, wire.Float)
	wire.WriteIfNotNil(w, "total_spent_hours", v.TotalSpentHours, wire.Float)
	writeList(w, "custom_fields", "custom_field", v.CustomFields, writeIssueCustomField)
	wire.WriteIfNotNil(w, "created_on", v.CreatedOn, wire.DateTime)
	wire.WriteIfNotNil(w, "updated_on", v.UpdatedOn, wire.DateTime)
	wire.WriteIfNotNil(w, "closed_on", v.ClosedOn, wire.DateTime)
	wire.WriteIfNotDefault(w, "notes", v.Notes, wire.String)
	wire.WriteIfNotDefault(w, "private_notes", v.PrivateNotes, wire.Bool)
	writeList(w, "uploads", "upload", v.Uploads, writeUpload)
	writeList(w, "journals", "journal", v.Journals, writeJournal)
	writeList(w, "changesets", "changeset", v.ChangeSets, writeChangeSet)
	writeList(w, "attachments", "attachment", v.Attachments, writeAttachment)
	writeList(w, "relations", "relation", v.Relations, writeIssueRelation)
	writeList(w, "children", "issue", v.Children, writeIssueChild)
	writeList(w, "watchers", "user", v.Watchers, writeRefAs[types.Watcher])
	writeList(w, "allowed_statuses", "status", v.AllowedStatuses, writeIssueAllowedStatus)

	// request keys
	writeRefID(w, "project_id", v.Project)
	writeRefID(w, "tracker_id", v.Tracker)
	if v.Status != nil && v.Status.ID != 0 {
		w.Field("status_id", wire.Int(v.Status.ID))
	}
	writeRefID(w, "priority_id", v.Priority)
	writeRefIDOrEmpty(w, "category_id", v.Category)
	writeRefIDOrEmpty(w, "fixed_version_id", v.FixedVersion)
	writeRefIDOrEmpty(w, "assigned_to_id", v.AssignedTo)
	writeRefIDOrEmpty(w, "parent_issue_id", v.Parent)
	if len(v.Watchers) > 0 {
		ids := make([]int, 0, len(v.Watchers))
		for _, watcher := range v.Watchers {
			ids = append(ids, watcher.ID)
		}
		writeInts(w, "watcher_user_ids", "watcher_user_id", ids)
	}
	w.EndObject()
}

// writeStatusRef writes the status embedded in an issue: id, name and flags as attributes
func writeStatusRef(w wire.IWriter, name string, v *types.IssueStatus) {
	if v == nil {
		return
	}
	w.StartObject(name)
	w.Attr("id", wire.Int(v.ID))
	wire.WriteAttrIfNotDefault(w, "name", v.Name, wire.String)
	wire.WriteAttrIfNotDefault(w, "is_default", v.IsDefault, wire.Bool)
	wire.WriteAttrIfNotDefault(w, "is_closed", v.IsClosed, wire.Bool)
	w.EndObject()
}

// --------------------------------------------------------------------------
// Children, relations & allowed statuses
// --------------------------------------------------------------------------

func readIssueChild(r wire.IReader) (*types.IssueChild, error) {
	return readObject(r, func(v *types.IssueChild, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "tracker":
			v.Tracker, err = readRef(r)
		case "subject":
			v.Subject, err = wire.ReadString(r)
		case "children":
			v.Children, err = readList(r, readIssueChild)
		}
		return err
	})
}

func writeIssueChild(w wire.IWriter, name string, v *types.IssueChild) {
	w.StartObject(name)
	w.Attr("id", wire.Int(v.ID))
	writeRef(w, "tracker", v.Tracker)
	wire.WriteIfNotDefault(w, "subject", v.Subject, wire.String)
	writeList(w, "children", "issue", v.Children, writeIssueChild)
	w.EndObject()
}

func readIssueRelation(r wire.IReader) (*types.IssueRelation, error) {
	return readObject(r, func(v *types.IssueRelation, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "issue_id":
			v.IssueID, err = wire.ReadInt(r)
		case "issue_to_id":
			v.IssueToID, err = wire.ReadInt(r)
		case "relation_type":
			var s string
			s, err = wire.ReadString(r)
			v.Type = types.RelationType(s)
		case "delay":
			v.Delay, err = wire.ReadNullableInt(r)
		}
		return err
	})
}

func writeIssueRelation(w wire.IWriter, name string, v *types.IssueRelation) {
	w.StartObject(name)
	wire.WriteIfNotDefault(w, "id", v.ID, wire.Int)
	wire.WriteIfNotDefault(w, "issue_id", v.IssueID, wire.Int)
	w.Field("issue_to_id", wire.Int(v.IssueToID))
	wire.WriteIfNotDefault(w, "relation_type", v.Type, stringOf[types.RelationType])
	wire.WriteIfNotNil(w, "delay", v.Delay, wire.Int)
	w.EndObject()
}

func readIssueAllowedStatus(r wire.IReader) (*types.IssueAllowedStatus, error) {
	return readObject(r, func(v *types.IssueAllowedStatus, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "name":
			v.Name, err = wire.ReadString(r)
		case "is_closed":
			v.IsClosed, err = wire.ReadBool(r)
		}
		return err
	})
}

func writeIssueAllowedStatus(w wire.IWriter, name string, v *types.IssueAllowedStatus) {
	w.StartObject(name)
	w.Attr("id", wire.Int(v.ID))
	wire.WriteAttrIfNotDefault(w, "name", v.Name, wire.String)
	w.Attr("is_closed", wire.Bool(v.IsClosed))
	w.EndObject()
}

// --------------------------------------------------------------------------
// Custom field values
// --------------------------------------------------------------------------

func readIssueCustomField(r wire.IReader) (*types.IssueCustomField, error) {
	return readObject(r, func(v *types.IssueCustomField, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "name":
			v.Name, err = wire.ReadString(r)
		case "multiple":
			v.Multiple, err = wire.ReadBool(r)
		case "value":
			v.Values, err = readCustomFieldValues(r)
		}
		return err
	})
}

// readCustomFieldValues normalizes "value": "x" and "value": ["x", "y"] (and
// their XML counterparts) to a collection of values
func readCustomFieldValues(r wire.IReader) ([]types.CustomFieldValue, error) {
	switch r.Kind() {
	case wire.KindArray:
		return readList(r, readCustomFieldValue)
	case wire.KindNull, wire.KindNone:
		return nil, r.Skip()
	default:
		v, err := readCustomFieldValue(r)
		if err != nil || v == nil {
			return nil, err
		}
		return []types.CustomFieldValue{*v}, nil
	}
}

func writeIssueCustomField(w wire.IWriter, name string, v *types.IssueCustomField) {
	w.StartObject(name)
	w.Attr("id", wire.Int(v.ID))
	wire.WriteAttrIfNotDefault(w, "name", v.Name, wire.String)
	wire.WriteAttrIfNotDefault(w, "multiple", v.Multiple, wire.Bool)
	switch {
	case v.Multiple || len(v.Values) > 1:
		w.StartArray("value")
		for _, value := range v.Values {
			w.Field("value", wire.String(value.Info))
		}
		w.EndArray()
	case len(v.Values) == 1:
		w.Field("value", wire.String(v.Values[0].Info))
	}
	w.EndObject()
}

func readCustomFieldValue(r wire.IReader) (*types.CustomFieldValue, error) {
	return readText(r, func(s string) types.CustomFieldValue {
		return types.CustomFieldValue{Info: s}
	})
}

func writeCustomFieldValue(w wire.IWriter, name string, v *types.CustomFieldValue) {
	w.Field(name, wire.String(v.Info))
}

// --------------------------------------------------------------------------
// Journals & change sets
// --------------------------------------------------------------------------

func readJournal(r wire.IReader) (*types.Journal, error) {
	return readObject(r, func(v *types.Journal, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "user":
			v.User, err = readRef(r)
		case "notes":
			v.Notes, err = wire.ReadString(r)
		case "created_on":
			v.CreatedOn, err = wire.ReadNullableDateTime(r)
		case "updated_on":
			v.UpdatedOn, err = wire.ReadNullableDateTime(r)
		case "updated_by":
			v.UpdatedBy, err = readRef(r)
		case "private_notes":
			v.PrivateNotes, err = wire.ReadBool(r)
		case "details":
			v.Details, err = readList(r, readDetail)
		}
		return err
	})
}

func writeJournal(w wire.IWriter, name string, v *types.Journal) {
	w.StartObject(name)
	w.Attr("id", wire.Int(v.ID))
	writeRef(w, "user", v.User)
	wire.WriteIfNotDefault(w, "notes", v.Notes, wire.String)
	wire.WriteIfNotNil(w, "created_on", v.CreatedOn, wire.DateTime)
	wire.WriteIfNotNil(w, "updated_on", v.UpdatedOn, wire.DateTime)
	writeRef(w, "updated_by", v.UpdatedBy)
	w.Field("private_notes", wire.Bool(v.PrivateNotes))
	writeList(w, "details", "detail", v.Details, writeDetail)
	w.EndObject()
}

func readDetail(r wire.IReader) (*types.Detail, error) {
	return readObject(r, func(v *types.Detail, field string) (err error) {
		switch field {
		case "property":
			v.Property, err = wire.ReadString(r)
		case "name":
			v.Name, err = wire.ReadString(r)
		case "old_value":
			v.OldValue, err = wire.ReadString(r)
		case "new_value":
			v.NewValue, err = wire.ReadString(r)
		}
		return err
	})
}

func writeDetail(w wire.IWriter, name string, v *types.Detail) {
	w.StartObject(name)
	w.Attr("property", wire.String(v.Property))
	w.Attr("name", wire.String(v.Name))
	wire.WriteIfNotDefault(w, "old_value", v.OldValue, wire.String)
	wire.WriteIfNotDefault(w, "new_value", v.NewValue, wire.String)
	w.EndObject()
}

func readChangeSet(r wire.IReader) (*types.ChangeSet, error) {
	return readObject(r, func(v *types.ChangeSet, field string) (err error) {
		switch field {
		case "revision":
			v.Revision, err = wire.ReadString(r)
		case "user":
			v.User, err = readRef(r)
		case "comments":
			v.Comments, err = wire.ReadString(r)
		case "committed_on":
			v.CommittedOn, err = wire.ReadNullableDateTime(r)
		}
		return err
	})
}

func writeChangeSet(w wire.IWriter, name string, v *types.ChangeSet) {
	w.StartObject(name)
	w.Attr("revision", wire.String(v.Revision))
	writeRef(w, "user", v.User)
	wire.WriteIfNotDefault(w, "comments", v.Comments, wire.String)
	wire.WriteIfNotNil(w, "committed_on", v.CommittedOn, wire.DateTime)
	w.EndObject()
}

// --------------------------------------------------------------------------
// Attachments & uploads
// --------------------------------------------------------------------------

func readAttachment(r wire.IReader) (*types.Attachment, error) {
	return readObject(r, func(v *types.Attachment, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "filename":
			v.FileName, err = wire.ReadString(r)
		case "filesize":
			v.FileSize, err = wire.ReadInt(r)
		case "content_type":
			v.ContentType, err = wire.ReadString(r)
		case "description":
			v.Description, err = wire.ReadString(r)
		case "content_url":
			v.ContentURL, err = wire.ReadString(r)
		case "thumbnail_url":
			v.ThumbnailURL, err = wire.ReadString(r)
		case "author":
			v.Author, err = readRef(r)
		case "created_on":
			v.CreatedOn, err = wire.ReadNullableDateTime(r)
		}
		return err
	})
}

func writeAttachment(w wire.IWriter, name string, v *types.Attachment) {
	w.StartObject(name)
	wire.WriteIfNotDefault(w, "id", v.ID, wire.Int)
	wire.WriteIfNotDefault(w, "filename", v.FileName, wire.String)
	wire.WriteIfNotDefault(w, "filesize", v.FileSize, wire.Int)
	wire.WriteIfNotDefault(w, "content_type", v.ContentType, wire.String)
	w.Field("description", wire.String(v.Description))
	wire.WriteIfNotDefault(w, "content_url", v.ContentURL, wire.String)
	wire.WriteIfNotDefault(w, "thumbnail_url", v.ThumbnailURL, wire.String)
	writeRef(w, "author", v.Author)
	wire.WriteIfNotNil(w, "created_on", v.CreatedOn, wire.DateTime)
	w.EndObject()
}

func readUpload(r wire.IReader) (*types.Upload, error) {
	return readObject(r, func(v *types.Upload, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "token":
			v.Token, err = wire.ReadString(r)
		case "filename":
			v.FileName, err = wire.ReadString(r)
		case "content_type":
			v.ContentType, err = wire.ReadString(r)
		case "description":
			v.Description, err = wire.ReadString(r)
		}
		return err
	})
}

func writeUpload(w wire.IWriter, name string, v *types.Upload) {
	w.StartObject(name)
	wire.WriteIfNotDefault(w, "id", v.ID, wire.Int)
	wire.WriteIfNotDefault(w, "token", v.Token, wire.String)
	wire.WriteIfNotDefault(w, "filename", v.FileName, wire.String)
	wire.WriteIfNotDefault(w, "content_type", v.ContentType, wire.String)
	wire.WriteIfNotDefault(w, "description", v.Description, wire.String)
	w.EndObject()
}
