package gh

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"emperror.dev/errors"
)

type Label struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description,omitempty"`
}

// NormalizeColor returns the color in the form used by the API: six lowercase
// hex digits without a leading '#'.
func NormalizeColor(color string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(color), "#"))
}

func (c *Client) Labels(ctx context.Context, repo Repo) ([]Label, error) {
	labels, err := list[Label](ctx, c, repo.path("labels")+"?per_page="+strconv.Itoa(perPage))
	if err != nil {
		return nil, errors.WrapIff(err, "failed to fetch labels from repository %s", repo)
	}
	for i := range labels {
		labels[i].Color = NormalizeColor(labels[i].Color)
	}
	return labels, nil
}

func (c *Client) CreateLabel(ctx context.Context, cred *Credential, repo Repo, label Label) error {
	label.Color = NormalizeColor(label.Color)
	if err := c.write(ctx, cred, http.MethodPost, repo.path("labels"), label, nil); err != nil {
		return errors.WrapIff(err, "failed to create label %q in %s", label.Name, repo)
	}
	return nil
}

// UpdateLabel updates the label called name. The label may be renamed by
// passing a different label.Name.
func (c *Client) UpdateLabel(ctx context.Context, cred *Credential, repo Repo, name string, label Label) error {
	body := struct {
		NewName     string `json:"new_name"`
		Color       string `json:"color"`
		Description string `json:"description,omitempty"`
	}{
		NewName:     label.Name,
		Color:       NormalizeColor(label.Color),
		Description: label.Description,
	}
	endpoint := repo.path("labels", url.PathEscape(name))
	if err := c.write(ctx, cred, http.MethodPatch, endpoint, body, nil); err != nil {
		return errors.WrapIff(err, "failed to update label %q in %s", name, repo)
	}
	return nil
}

func (c *Client) DeleteLabel(ctx context.Context, cred *Credential, repo Repo, name string) error {
	endpoint := repo.path("labels", url.PathEscape(name))
	if err := c.write(ctx, cred, http.MethodDelete, endpoint, nil, nil); err != nil {
		return errors.WrapIff(err, "failed to delete label %q from %s", name, repo)
	}
	return nil
}
