package mailservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tp, err := NewTemplate()
	require.NoError(t, err)

	testCases := []struct {
		name         string
		templateName TemplateName
		data         any
		contains     string
		expectedErr  bool
	}{
		{
			name:         "activation",
			templateName: ActivationTemplate,
			data:         activationData{ActivationToken: "ABCDEFGHIJKLMNOPQRSTUVWXYZ"},
			contains:     "ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		},
		{
			name:         "new post",
			templateName: NewPostTemplate,
			data:         newPostData{PostID: 3, Title: "Hello", Preview: "Some text...", Categories: []string{"Tech", "Sport"}},
			contains:     "Tech, Sport",
		},
		{
			name:         "unknown template",
			templateName: TemplateName("invalid_template.html"),
			expectedErr:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := tp.Render(tc.templateName, tc.data)
			assert.Equal(t, tc.expectedErr, err != nil)

			if err == nil {
				assert.NotEmpty(t, e.subject)
				assert.Contains(t, e.plainBody, tc.contains)
				assert.Contains(t, e.htmlBody, tc.contains)
			}
		})
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	tp, err := NewTemplate()
	require.NoError(t, err)

	e, err := tp.Render(NewPostTemplate, newPostData{Title: "<script>x</script>"})
	assert.NoError(t, err)
	assert.NotContains(t, e.htmlBody, "<script>")
}

func TestNewTemplateParsesEveryName(t *testing.T) {
	tp, err := NewTemplate()
	require.NoError(t, err)

	for _, name := range templateNames {
		assert.Contains(t, tp.set, name)
	}
}
