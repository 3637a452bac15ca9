package converters

import (
	"github.com/ValentinKolb/redmine/lib/types"
	"github.com/ValentinKolb/redmine/rpc/serializer/wire"
)

// --------------------------------------------------------------------------
// Project
// --------------------------------------------------------------------------

func readProject(r wire.IReader) (*types.Project, error) {
	return readObject(r, func(v *types.Project, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "name":
			v.Name, err = wire.ReadString(r)
		case "identifier":
			v.Identifier, err = wire.ReadString(r)
		case "description":
			v.Description, err = wire.ReadString(r)
		case "homepage":
			v.Homepage, err = wire.ReadString(r)
		case "parent":
			v.Parent, err = readRef(r)
		case "status":
			var status int
			status, err = wire.ReadInt(r)
			v.Status = types.ProjectStatus(status)
		case "is_public":
			v.IsPublic, err = wire.ReadBool(r)
		case "inherit_members":
			v.InheritMembers, err = wire.ReadBool(r)
		case "default_version":
			v.DefaultVersion, err = readRef(r)
		case "default_assignee":
			v.DefaultAssignee, err = readRef(r)
		case "created_on":
			v.CreatedOn, err = wire.ReadNullableDateTime(r)
		case "updated_on":
			v.UpdatedOn, err = wire.ReadNullableDateTime(r)
		case "trackers":
			v.Trackers, err = readList(r, readRefAs[types.ProjectTracker])
		case "issue_categories":
			v.IssueCategories, err = readList(r, readRefAs[types.ProjectIssueCategory])
		case "time_entry_activities":
			v.TimeEntryActivities, err = readList(r, readRefAs[types.ProjectTimeEntryActivity])
		case "enabled_modules":
			v.EnabledModules, err = readList(r, readRefAs[types.ProjectEnabledModule])
		case "issue_custom_fields":
			v.IssueCustomFields, err = readList(r, readIssueCustomField)
		case "custom_fields":
			v.CustomFields, err = readList(r, readIssueCustomField)
		}
		return err
	})
}

func writeProject(w wire.IWriter, name string, v *types.Project) {
	w.StartObject(name)
	wire.WriteIfNotDefault(w, "id", v.ID, wire.Int)
	w.Field("name", wire.String(v.Name))
	w.Field("identifier", wire.String(v.Identifier))
	wire.WriteIfNotDefault(w, "description", v.Description, wire.String)
	wire.WriteIfNotDefault(w, "homepage", v.Homepage, wire.String)
	writeRef(w, "parent", v.Parent)
	wire.WriteIfNotDefault(w, "status", v.Status, intOf[types.ProjectStatus])
	w.Field("is_public", wire.Bool(v.IsPublic))
	w.Field("inherit_members", wire.Bool(v.InheritMembers))
	writeRef(w, "default_version", v.DefaultVersion)
	writeRef(w, "default_assignee", v.DefaultAssignee)
	wire.WriteIfNotNil(w, "created_on", v.CreatedOn, wire.DateTime)
	wire.WriteIfNotNil(w, "updated_on", v.UpdatedOn, wire.DateTime)
	writeList(w, "trackers", "tracker", v.Trackers, writeRefAs[types.ProjectTracker])
	writeList(w, "issue_categories", "issue_category", v.IssueCategories, writeRefAs[types.ProjectIssueCategory])
	writeList(w, "time_entry_activities", "time_entry_activity", v.TimeEntryActivities, writeRefAs[types.ProjectTimeEntryActivity])
	writeList(w, "enabled_modules", "enabled_module", v.EnabledModules, writeRefAs[types.ProjectEnabledModule])
	writeList(w, "issue_custom_fields", "custom_field", v.IssueCustomFields, writeIssueCustomField)
	writeList(w, "custom_fields", "custom_field", v.CustomFields, writeIssueCustomField)

	// request keys
	writeRefID(w, "parent_id", v.Parent)
	if len(v.Trackers) > 0 {
		ids := make([]int, 0, len(v.Trackers))
		for _, tracker := range v.Trackers {
			ids = append(ids, tracker.ID)
		}
		writeInts(w, "tracker_ids", "tracker_id", ids)
	}
	if len(v.EnabledModules) > 0 {
		w.StartArray("enabled_module_names")
		for _, module := range v.EnabledModules {
			w.Field("enabled_module_name", wire.String(module.Name))
		}
		w.EndArray()
	}
	w.EndObject()
}

// --------------------------------------------------------------------------
// Memberships
// --------------------------------------------------------------------------

func readProjectMembership(r wire.IReader) (*types.ProjectMembership, error) {
	return readObject(r, func(v *types.ProjectMembership, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "project":
			v.Project, err = readRef(r)
		case "user":
			v.User, err = readRef(r)
		case "group":
			v.Group, err = readRef(r)
		case "roles":
			v.Roles, err = readList(r, readMembershipRole)
		}
		return err
	})
}

func writeProjectMembership(w wire.IWriter, name string, v *types.ProjectMembership) {
	w.StartObject(name)
	wire.WriteIfNotDefault(w, "id", v.ID, wire.Int)
	writeRef(w, "project", v.Project)
	writeRef(w, "user", v.User)
	writeRef(w, "group", v.Group)
	writeList(w, "roles", "role", v.Roles, writeMembershipRole)

	// request keys, a membership is created for a user or a group
	switch {
	case v.User != nil:
		writeRefID(w, "user_id", v.User)
	case v.Group != nil:
		writeRefID(w, "user_id", v.Group)
	}
	writeRoleIDs(w, v.Roles)
	w.EndObject()
}

func readMembership(r wire.IReader) (*types.Membership, error) {
	return readObject(r, func(v *types.Membership, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "project":
			v.Project, err = readRef(r)
		case "roles":
			v.Roles, err = readList(r, readMembershipRole)
		}
		return err
	})
}

func writeMembership(w wire.IWriter, name string, v *types.Membership) {
	w.StartObject(name)
	wire.WriteIfNotDefault(w, "id", v.ID, wire.Int)
	writeRef(w, "project", v.Project)
	writeList(w, "roles", "role", v.Roles, writeMembershipRole)
	w.EndObject()
}

func writeRoleIDs(w wire.IWriter, roles []types.MembershipRole) {
	if len(roles) == 0 {
		return
	}
	ids := make([]int, 0, len(roles))
	for _, role := range roles {
		ids = append(ids, role.ID)
	}
	writeInts(w, "role_ids", "role_id", ids)
}

func readMembershipRole(r wire.IReader) (*types.MembershipRole, error) {
	return readObject(r, func(v *types.MembershipRole, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "name":
			v.Name, err = wire.ReadString(r)
		case "inherited":
			v.Inherited, err = wire.ReadBool(r)
		}
		return err
	})
}

func writeMembershipRole(w wire.IWriter, name string, v *types.MembershipRole) {
	w.StartObject(name)
	w.Attr("id", wire.Int(v.ID))
	wire.WriteAttrIfNotDefault(w, "name", v.Name, wire.String)
	wire.WriteAttrIfNotDefault(w, "inherited", v.Inherited, wire.Bool)
	w.EndObject()
}

// --------------------------------------------------------------------------
// Issue categories & versions
// --------------------------------------------------------------------------

func readIssueCategory(r wire.IReader) (*types.IssueCategory, error) {
	return readObject(r, func(v *types.IssueCategory, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "project":
			v.Project, err = readRef(r)
		case "assigned_to":
			v.AssignedTo, err = readRef(r)
		case "name":
			v.Name, err = wire.ReadString(r)
		}
		return err
	})
}

func writeIssueCategory(w wire.IWriter, name string, v *types.IssueCategory) {
	w.StartObject(name)
	wire.WriteIfNotDefault(w, "id", v.ID, wire.Int)
	writeRef(w, "project", v.Project)
	writeRef(w, "assigned_to", v.AssignedTo)
	w.Field("name", wire.String(v.Name))
	writeRefID(w, "assigned_to_id", v.AssignedTo)
	w.EndObject()
}

func readVersion(r wire.IReader) (*types.Version, error) {
	return readObject(r, func(v *types.Version, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "project":
			v.Project, err = readRef(r)
		case "name":
			v.Name, err = wire.ReadString(r)
		case "description":
			v.Description, err = wire.ReadString(r)
		case "status":
			var s string
			s, err = wire.ReadString(r)
			v.Status = types.VersionStatus(s)
		case "due_date":
			v.DueDate, err = wire.ReadNullableDate(r)
		case "sharing":
			var s string
			s, err = wire.ReadString(r)
			v.Sharing = types.VersionSharing(s)
		case "wiki_page_title":
			v.WikiPageTitle, err = wire.ReadString(r)
		case "estimated_hours":
			v.EstimatedHours, err = wire.ReadNullableFloat(r)
		case "spent_hours":
			v.SpentHours, err = wire.ReadNullableFloat(r)
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

func writeVersion(w wire.IWriter, name string, v *types.Version) {
	w.StartObject(name)
	wire.WriteIfNotDefault(w, "id", v.ID, wire.Int)
	writeRef(w, "project", v.Project)
	w.Field("name", wire.String(v.Name))
	wire.WriteIfNotDefault(w, "description", v.Description, wire.String)
	wire.WriteIfNotDefault(w, "status", v.Status, stringOf[types.VersionStatus])
	wire.WriteDateOrEmpty(w, "due_date", v.DueDate)
	wire.WriteIfNotDefault(w, "sharing", v.Sharing, stringOf[types.VersionSharing])
	wire.WriteIfNotDefault(w, "wiki_page_title", v.WikiPageTitle, wire.String)
	wire.WriteIfNotNil(w, "estimated_hours", v.EstimatedHours, wire.Float)
	wire.WriteIfNotNil(w, "spent_hours", v.SpentHours, wire.Float)
	wire.WriteIfNotNil(w, "created_on", v.CreatedOn, wire.DateTime)
	wire.WriteIfNotNil(w, "updated_on", v.UpdatedOn, wire.DateTime)
	writeList(w, "custom_fields", "custom_field", v.CustomFields, writeIssueCustomField)
	w.EndObject()
}

// --------------------------------------------------------------------------
// News
// --------------------------------------------------------------------------

func readNews(r wire.IReader) (*types.News, error) {
	return readObject(r, func(v *types.News, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "project":
			v.Project, err = readRef(r)
		case "author":
			v.Author, err = readRef(r)
		case "title":
			v.Title, err = wire.ReadString(r)
		case "summary":
			v.Summary, err = wire.ReadString(r)
		case "description":
			v.Description, err = wire.ReadString(r)
		case "created_on":
			v.CreatedOn, err = wire.ReadNullableDateTime(r)
		case "attachments":
			v.Attachments, err = readList(r, readAttachment)
		case "comments":
			v.Comments, err = readList(r, readNewsComment)
		case "uploads":
			v.Uploads, err = readList(r, readUpload)
		}
		return err
	})
}

func writeNews(w wire.IWriter, name string, v *types.News) {
	w.StartObject(name)
	wire.WriteIfNotDefault(w, "id", v.ID, wire.Int)
	writeRef(w, "project", v.Project)
	writeRef(w, "author", v.Author)
	w.Field("title", wire.String(v.Title))
	wire.WriteIfNotDefault(w, "summary", v.Summary, wire.String)
	wire.WriteIfNotDefault(w, "description", v.Description, wire.String)
	wire.WriteIfNotNil(w, "created_on", v.CreatedOn, wire.DateTime)
	writeList(w, "attachments", "attachment", v.Attachments, writeAttachment)
	writeList(w, "comments", "comment", v.Comments, writeNewsComment)
	writeList(w, "uploads", "upload", v.Uploads, writeUpload)
	w.EndObject()
}

func readNewsComment(r wire.IReader) (*types.NewsComment, error) {
	return readObject(r, func(v *types.NewsComment, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "author":
			v.Author, err = readRef(r)
		case "content":
			v.Content, err = wire.ReadString(r)
		}
		return err
	})
}

func writeNewsComment(w wire.IWriter, name string, v *types.NewsComment) {
	w.StartObject(name)
	w.Attr("id", wire.Int(v.ID))
	writeRef(w, "author", v.Author)
	wire.WriteIfNotDefault(w, "content", v.Content, wire.String)
	w.EndObject()
}

// --------------------------------------------------------------------------
// Wiki pages & files
// --------------------------------------------------------------------------

func readWikiPage(r wire.IReader) (*types.WikiPage, error) {
	return readObject(r, func(v *types.WikiPage, field string) (err error) {
		switch field {
		case "title":
			v.Title, err = wire.ReadString(r)
		case "parent":
			err = r.ReadObject(func(field string) (err error) {
				if field == "title" {
					v.ParentTitle, err = wire.ReadString(r)
				}
				return err
			})
		case "text":
			v.Text, err = wire.ReadString(r)
		case "version":
			v.Version, err = wire.ReadInt(r)
		case "author":
			v.Author, err = readRef(r)
		case "comments":
			v.Comments, err = wire.ReadString(r)
		case "created_on":
			v.CreatedOn, err = wire.ReadNullableDateTime(r)
		case "updated_on":
			v.UpdatedOn, err = wire.ReadNullableDateTime(r)
		case "attachments":
			v.Attachments, err = readList(r, readAttachment)
		case "uploads":
			v.Uploads, err = readList(r, readUpload)
		}
		return err
	})
}

func writeWikiPage(w wire.IWriter, name string, v *types.WikiPage) {
	w.StartObject(name)
	wire.WriteIfNotDefault(w, "title", v.Title, wire.String)
	if v.ParentTitle != "" {
		w.StartObject("parent")
		w.Attr("title", wire.String(v.ParentTitle))
		w.EndObject()
	}
	w.Field("text", wire.String(v.Text))
	wire.WriteIfNotDefault(w, "version", v.Version, wire.Int)
	writeRef(w, "author", v.Author)
	wire.WriteIfNotDefault(w, "comments", v.Comments, wire.String)
	wire.WriteIfNotNil(w, "created_on", v.CreatedOn, wire.DateTime)
	wire.WriteIfNotNil(w, "updated_on", v.UpdatedOn, wire.DateTime)
	writeList(w, "attachments", "attachment", v.Attachments, writeAttachment)
	writeList(w, "uploads", "upload", v.Uploads, writeUpload)
	w.EndObject()
}

func readFile(r wire.IReader) (*types.File, error) {
	return readObject(r, func(v *types.File, field string) (err error) {
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
		case "author":
			v.Author, err = readRef(r)
		case "created_on":
			v.CreatedOn, err = wire.ReadNullableDateTime(r)
		case "version":
			v.Version, err = readRef(r)
		case "digest":
			v.Digest, err = wire.ReadString(r)
		case "downloads":
			v.Downloads, err = wire.ReadInt(r)
		case "token":
			v.Token, err = wire.ReadString(r)
		}
		return err
	})
}

func writeFile(w wire.IWriter, name string, v *types.File) {
	w.StartObject(name)
	wire.WriteIfNotDefault(w, "id", v.ID, wire.Int)
	wire.WriteIfNotDefault(w, "filename", v.FileName, wire.String)
	wire.WriteIfNotDefault(w, "filesize", v.FileSize, wire.Int)
	wire.WriteIfNotDefault(w, "content_type", v.ContentType, wire.String)
	wire.WriteIfNotDefault(w, "description", v.Description, wire.String)
	wire.WriteIfNotDefault(w, "content_url", v.ContentURL, wire.String)
	writeRef(w, "author", v.Author)
	wire.WriteIfNotNil(w, "created_on", v.CreatedOn, wire.DateTime)
	writeRef(w, "version", v.Version)
	wire.WriteIfNotDefault(w, "digest", v.Digest, wire.String)
	wire.WriteIfNotDefault(w, "downloads", v.Downloads, wire.Int)
	wire.WriteIfNotDefault(w, "token", v.Token, wire.String)
	writeRefID(w, "version_id", v.Version)
	w.EndObject()
}
