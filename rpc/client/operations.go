package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/ValentinKolb/redmine/lib/types"
	"github.com/ValentinKolb/redmine/rpc/common"
	"github.com/ValentinKolb/redmine/rpc/serializer"
	"github.com/ValentinKolb/redmine/rpc/serializer/converters"
)

// --------------------------------------------------------------------------
// Read operations
// --------------------------------------------------------------------------

// Get fetches one entity by id (or identifier, e.g. a project identifier or
// wiki page title). The id is ignored for singleton resources like my/account.
func Get[T any](ctx context.Context, c *RedmineClient, id string, opts *RequestOptions) (*T, error) {
	path, err := entityPath(converters.TypeOf[T](), id, opts)
	if err != nil {
		return nil, err
	}

	req := common.NewGetRequest(withFormat(path, c.serializer.Format()), queryOf(opts))
	resp, err := c.invoke(ctx, req)
	if err != nil {
		return nil, err
	}
	return serializer.Deserialize[T](c.serializer, resp.Body)
}

// List fetches one page. Offset and limit are taken from opts.Query, the limit
// defaults to the configured page size.
func List[T any](ctx context.Context, c *RedmineClient, opts *RequestOptions) (*types.PagedResults[T], error) {
	path, err := collectionPath(converters.TypeOf[T](), opts)
	if err != nil {
		return nil, err
	}

	query := queryOf(opts)
	if query.Get("limit") == "" {
		query.Set("limit", strconv.Itoa(c.pageSize()))
	}

	resp, err := c.invoke(ctx, common.NewGetRequest(withFormat(path, c.serializer.Format()), query))
	if err != nil {
		return nil, err
	}
	return serializer.DeserializeToPagedResults[T](c.serializer, resp.Body)
}

// ListAll walks all pages starting at the offset in opts.Query and returns
// every item. It stops at the server total or at the first empty page.
func ListAll[T any](ctx context.Context, c *RedmineClient, opts *RequestOptions) ([]T, error) {
	pageOpts := &RequestOptions{Query: queryOf(opts)}
	if opts != nil {
		pageOpts.Path = opts.Path
	}
	offset, _ := strconv.Atoi(pageOpts.Query.Get("offset"))

	var all []T
	for {
		pageOpts.Query.Set("offset", strconv.Itoa(offset))
		page, err := List[T](ctx, c, pageOpts)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		Logger.Debugf("ListAll %s: %d of %d items", converters.TypeOf[T](), len(all), page.TotalItems)

		if len(page.Items) == 0 || !page.HasMore() {
			return all, nil
		}
		offset = page.Offset + len(page.Items)
	}
}

// Count returns the total number of entities matching opts. Only one item is
// requested from the server.
func Count[T any](ctx context.Context, c *RedmineClient, opts *RequestOptions) (int, error) {
	path, err := collectionPath(converters.TypeOf[T](), opts)
	if err != nil {
		return 0, err
	}

	query := queryOf(opts)
	query.Set("limit", "1")
	resp, err := c.invoke(ctx, common.NewGetRequest(withFormat(path, c.serializer.Format()), query))
	if err != nil {
		return 0, err
	}
	return serializer.Count[T](c.serializer, resp.Body)
}

// --------------------------------------------------------------------------
// Write operations
// --------------------------------------------------------------------------

// Create posts v to the collection and returns the entity created by the
// server. Endpoints that answer without a body yield (nil, nil).
func Create[T any](ctx context.Context, c *RedmineClient, v *T, opts *RequestOptions) (*T, error) {
	path, err := collectionPath(converters.TypeOf[T](), opts)
	if err != nil {
		return nil, err
	}
	body, err := serializer.Serialize(c.serializer, v)
	if err != nil {
		return nil, err
	}

	req := common.NewPostRequest(withFormat(path, c.serializer.Format()), body, c.serializer.ContentType())
	req.Query = queryOf(opts)
	resp, err := c.invoke(ctx, req)
	if err != nil {
		return nil, err
	}
	return serializer.Deserialize[T](c.serializer, resp.Body)
}

// Update puts v to the entity with the given id
func Update[T any](ctx context.Context, c *RedmineClient, id string, v *T, opts *RequestOptions) error {
	path, err := entityPath(converters.TypeOf[T](), id, opts)
	if err != nil {
		return err
	}
	body, err := serializer.Serialize(c.serializer, v)
	if err != nil {
		return err
	}

	req := common.NewPutRequest(withFormat(path, c.serializer.Format()), body, c.serializer.ContentType())
	req.Query = queryOf(opts)
	_, err = c.invoke(ctx, req)
	return err
}

// Delete removes the entity with the given id
func Delete[T any](ctx context.Context, c *RedmineClient, id string, opts *RequestOptions) error {
	path, err := entityPath(converters.TypeOf[T](), id, opts)
	if err != nil {
		return err
	}

	req := common.NewDeleteRequest(withFormat(path, c.serializer.Format()))
	req.Query = queryOf(opts)
	_, err = c.invoke(ctx, req)
	return err
}

// --------------------------------------------------------------------------
// Files
// --------------------------------------------------------------------------

// Upload sends raw file content and returns the upload token. The token is then
// attached to an issue, project file, ... through their Uploads field.
func Upload(ctx context.Context, c *RedmineClient, data []byte, filename string) (*types.Upload, error) {
	query := url.Values{}
	if filename != "" {
		query.Set("filename", filename)
	}

	req := common.NewPostRequest(withFormat(resourcePaths[types.EntityUpload], c.serializer.Format()), data, "application/octet-stream")
	req.Query = query
	resp, err := c.invoke(ctx, req)
	if err != nil {
		return nil, err
	}

	upload, err := serializer.Deserialize[types.Upload](c.serializer, resp.Body)
	if err != nil {
		return nil, err
	}
	if upload != nil && upload.FileName == "" {
		upload.FileName = filename
	}
	return upload, nil
}

// Download fetches the content of an attachment. contentURL is the absolute
// content_url of the attachment or a path relative to the base url.
func Download(ctx context.Context, c *RedmineClient, contentURL string) ([]byte, error) {
	resp, err := c.invoke(ctx, common.NewGetRequest(contentURL, nil))
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func (c *RedmineClient) pageSize() int {
	if c.config.PageSize <= 0 {
		return common.DefaultPageSize
	}
	return min(c.config.PageSize, common.MaxPageSize)
}
