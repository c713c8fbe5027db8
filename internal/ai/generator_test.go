package ai

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/hanzitutor/internal/config"
	"github.com/example/hanzitutor/pkg/models"
)

func chatServer(t *testing.T, reply string, requests *[]ChatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if requests != nil {
			*requests = append(*requests, req)
		}

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": reply}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func testClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := New(&config.Config{OpenAIKey: "test-key", OpenAIURL: url})
	require.NoError(t, err)
	return c
}

func testWords(chinese ...string) []models.Word {
	words := make([]models.Word, len(chinese))
	for i, c := range chinese {
		words[i] = models.Word{ID: i + 1, Chinese: c, English: "gloss"}
	}
	return words
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(&config.Config{OpenAIURL: config.DefaultOpenAIURL})
	assert.Error(t, err)
}

func TestGenerateSentence(t *testing.T) {
	var requests []ChatRequest
	srv := chatServer(t, "我很高兴。", &requests)
	defer srv.Close()

	c := testClient(t, srv.URL)
	got, err := c.GenerateSentence(testWords("我", "高兴"))
	require.NoError(t, err)

	assert.Equal(t, "我很高兴。", got.Text)
	// Second call is the translation pass.
	require.Len(t, requests, 2)
	prompt := requests[0].Messages[1].Content
	assert.Contains(t, prompt, "我")
	assert.Contains(t, prompt, "高兴")
}

func TestGenerateSentenceCapsWordCount(t *testing.T) {
	var requests []ChatRequest
	srv := chatServer(t, "好。", &requests)
	defer srv.Close()

	words := testWords("一", "二", "三", "四", "五", "六", "七", "八", "九", "十")
	c := testClient(t, srv.URL)
	_, err := c.GenerateSentence(words)
	require.NoError(t, err)

	prompt := requests[0].Messages[1].Content
	for _, w := range words[:MaxPromptWords] {
		assert.Contains(t, prompt, w.Chinese)
	}
	for _, w := range words[MaxPromptWords:] {
		assert.NotContains(t, prompt, w.Chinese)
	}
}

func TestGenerateSentenceRejectsOversizedEntry(t *testing.T) {
	srv := chatServer(t, "好。", nil)
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.GenerateSentence(testWords(strings.Repeat("好", MaxHeadwordLen+1)))
	assert.Error(t, err)
}

func TestGenerateSentenceRequiresWords(t *testing.T) {
	srv := chatServer(t, "好。", nil)
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.GenerateSentence(nil)
	assert.Error(t, err)
}

func TestCompleteReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error": {"message": "quota exceeded"}}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.Translate("我很高兴")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}
