package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/hanzitutor/internal/config"
	"github.com/example/hanzitutor/pkg/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Connect(&config.Config{
		DBType:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createWord(t *testing.T, repo *WordRepository, chinese, english string) *models.Word {
	t.Helper()
	word := &models.Word{Chinese: chinese, English: english}
	require.NoError(t, repo.Create(word))
	return word
}

func TestWordCRUD(t *testing.T) {
	repo := NewWordRepository(newTestDB(t))

	word := &models.Word{
		Chinese: "高兴",
		Pinyin:  "gāoxìng",
		English: "happy",
		Notes:   "also: glad",
	}
	require.NoError(t, repo.Create(word))
	assert.NotZero(t, word.ID)

	got, err := repo.GetByID(word.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "高兴", got.Chinese)
	assert.Equal(t, "gāoxìng", got.Pinyin)
	assert.Equal(t, "happy", got.English)

	got.English = "happy, glad"
	require.NoError(t, repo.Update(got))

	updated, err := repo.GetByID(word.ID)
	require.NoError(t, err)
	assert.Equal(t, "happy, glad", updated.English)

	require.NoError(t, repo.Delete(word.ID))
	gone, err := repo.GetByID(word.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestWordGetByChinese(t *testing.T) {
	repo := NewWordRepository(newTestDB(t))
	createWord(t, repo, "宿舍", "dormitory")

	got, err := repo.GetByChinese("宿舍")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "dormitory", got.English)

	missing, err := repo.GetByChinese("图书馆")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestWordSearch(t *testing.T) {
	repo := NewWordRepository(newTestDB(t))
	createWord(t, repo, "图书馆", "library")
	createWord(t, repo, "宿舍", "dormitory")

	byGloss, err := repo.Search("libr")
	require.NoError(t, err)
	require.Len(t, byGloss, 1)
	assert.Equal(t, "图书馆", byGloss[0].Chinese)

	byHeadword, err := repo.Search("宿")
	require.NoError(t, err)
	require.Len(t, byHeadword, 1)
	assert.Equal(t, "宿舍", byHeadword[0].Chinese)
}

func TestWordGetByIDsAndRandom(t *testing.T) {
	repo := NewWordRepository(newTestDB(t))
	w1 := createWord(t, repo, "我", "I")
	createWord(t, repo, "你", "you")
	w3 := createWord(t, repo, "他", "he")

	words, err := repo.GetByIDs([]int{w1.ID, w3.ID})
	require.NoError(t, err)
	assert.Len(t, words, 2)

	none, err := repo.GetByIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, none)

	random, err := repo.GetRandom(2)
	require.NoError(t, err)
	assert.Len(t, random, 2)
}

func TestDistinctHeadwords(t *testing.T) {
	repo := NewWordRepository(newTestDB(t))
	createWord(t, repo, "我", "I")
	createWord(t, repo, "高兴", "happy")

	headwords, err := repo.DistinctHeadwords()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"我", "高兴"}, headwords)
}

func TestSentenceRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewSentenceRepository(db)

	sentence := &models.Sentence{
		Text:           "我很高兴。",
		Translation:    "I am very happy.",
		UsedWords:      models.StringList{"我", "高兴"},
		UnknownChars:   models.StringList{"很"},
		UncoveredChars: models.StringList{"很"},
		Model:          "gpt-4o-mini",
	}
	require.NoError(t, repo.Create(sentence))
	assert.NotZero(t, sentence.ID)

	got, err := repo.GetByID(sentence.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "我很高兴。", got.Text)
	assert.Equal(t, models.StringList{"我", "高兴"}, got.UsedWords)
	assert.Equal(t, models.StringList{"很"}, got.UnknownChars)

	recent, err := repo.GetRecent(10)
	require.NoError(t, err)
	assert.Len(t, recent, 1)

	require.NoError(t, repo.Delete(sentence.ID))
	gone, err := repo.GetByID(sentence.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestReviewUpsertAndDue(t *testing.T) {
	db := newTestDB(t)
	words := NewWordRepository(db)
	reviews := NewReviewRepository(db)

	w1 := createWord(t, words, "我", "I")
	w2 := createWord(t, words, "高兴", "happy")

	// Both words start due: neither has ever been reviewed.
	due, err := reviews.GetDue(10)
	require.NoError(t, err)
	assert.Len(t, due, 2)

	// Review one word far into the future.
	now := time.Now()
	review := &models.Review{
		WordID:         w1.ID,
		EasinessFactor: 2.6,
		Interval:       7,
		Repetitions:    1,
		LastQuality:    5,
		LastReviewDate: now,
		NextReviewDate: now.AddDate(0, 0, 7),
	}
	require.NoError(t, reviews.Upsert(review))

	due, err = reviews.GetDue(10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, w2.ID, due[0].WordID)

	// Upsert again updates in place.
	review.Repetitions = 2
	require.NoError(t, reviews.Upsert(review))

	got, err := reviews.GetByWord(w1.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Repetitions)

	missing, err := reviews.GetByWord(9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
