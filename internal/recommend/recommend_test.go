package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealpick-core/server/internal/catalog"
)

func intPtr(n int) *int { return &n }

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Venue{
		{
			Name:        "분식집",
			Description: "김밥과 라면",
			Menu: []catalog.MenuItem{
				{Name: "참치김밥", Price: intPtr(4000)},
				{Name: "모둠초밥", Price: intPtr(12000)},
			},
			DeliveryDuration: "25분",
			DineInDuration:   "15분",
		},
		{
			Name:        "돈까스집",
			Description: "일본식 돈까스",
			Menu: []catalog.MenuItem{
				{Name: "등심돈까스", Price: intPtr(9000)},
			},
			DeliveryDuration: "40분",
			DineInDuration:   "30분",
		},
		{
			Name:        "오마카세",
			Description: "예약제 스시",
			Menu: []catalog.MenuItem{
				{Name: "오마카세 코스", DisplayPrice: "시가"},
			},
			DeliveryDuration: "배달 불가",
			DineInDuration:   "1시간 30분",
		},
	})
}

func TestRankGeneralFiltersBudgetAndTime(t *testing.T) {
	res := Rank(testCatalog(), SearchConstraints{
		MaxBudget:      10000,
		MaxTimeMinutes: 30,
		MealMode:       ModeDelivery,
	}, RankGeneral)

	require.Len(t, res.Candidates, 1)
	got := res.Candidates[0]
	assert.Equal(t, "분식집", got.Venue.Name)
	assert.Equal(t, 25, got.EstimatedMinutes)
	// only the menu the budget can reach, cheapest first
	require.Len(t, got.AffordableMenu, 1)
	assert.Equal(t, 4000, *got.AffordableMenu[0].Price)
}

func TestRankGeneralOrdersByDuration(t *testing.T) {
	res := Rank(testCatalog(), SearchConstraints{
		MaxBudget:      15000,
		MaxTimeMinutes: 120,
		MealMode:       ModeDelivery,
	}, RankGeneral)

	require.Len(t, res.Candidates, 2, "unparseable durations never pass the time filter")
	assert.Equal(t, "분식집", res.Candidates[0].Venue.Name)
	assert.Equal(t, "돈까스집", res.Candidates[1].Venue.Name)
}

func TestRankBestValueScores(t *testing.T) {
	res := Rank(testCatalog(), SearchConstraints{
		MaxBudget:      10000,
		MaxTimeMinutes: 60,
		MealMode:       ModeDelivery,
	}, RankBestValue)

	require.Len(t, res.Candidates, 2)
	// 분식집: (10000 - 4000) / 25 = 240, 돈까스집: (10000 - 9000) / 40 = 25
	assert.Equal(t, "분식집", res.Candidates[0].Venue.Name)
	assert.InDelta(t, 240.0, res.Candidates[0].ValueScore, 1e-9)
	assert.Equal(t, "돈까스집", res.Candidates[1].Venue.Name)
	assert.InDelta(t, 25.0, res.Candidates[1].ValueScore, 1e-9)
}

func TestRankKeywordFilter(t *testing.T) {
	res := Rank(testCatalog(), SearchConstraints{
		MaxBudget:      15000,
		MaxTimeMinutes: 120,
		MealMode:       ModeDelivery,
		Keyword:        "돈까스",
	}, RankGeneral)

	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "돈까스집", res.Candidates[0].Venue.Name)
}

func TestRankDineInUsesDineInDuration(t *testing.T) {
	res := Rank(testCatalog(), SearchConstraints{
		MaxBudget:      15000,
		MaxTimeMinutes: 20,
		MealMode:       ModeDineIn,
	}, RankGeneral)

	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "분식집", res.Candidates[0].Venue.Name)
	assert.Equal(t, 15, res.Candidates[0].EstimatedMinutes)
}

func TestRankEmptyResultIsAnswerNotError(t *testing.T) {
	constraints := SearchConstraints{
		MaxBudget:      1000,
		MaxTimeMinutes: 10,
		MealMode:       ModeDelivery,
	}
	res := Rank(testCatalog(), constraints, RankGeneral)

	assert.Empty(t, res.Candidates)
	assert.Equal(t, constraints, res.Constraints, "constraints echoed back for the caller")
	assert.NotEmpty(t, res.Suggestion)
}

func TestRankUnpricedMenuNeverAffordable(t *testing.T) {
	// generous budget and time, but the omakase menu has no numeric price
	res := Rank(testCatalog(), SearchConstraints{
		MaxBudget:      1000000,
		MaxTimeMinutes: 200,
		MealMode:       ModeDineIn,
	}, RankGeneral)

	for _, c := range res.Candidates {
		assert.NotEqual(t, "오마카세", c.Venue.Name)
	}
}

func TestRankStableTieBreak(t *testing.T) {
	cat := catalog.New([]catalog.Venue{
		{Name: "첫째", Menu: []catalog.MenuItem{{Name: "메뉴", Price: intPtr(5000)}}, DeliveryDuration: "30분"},
		{Name: "둘째", Menu: []catalog.MenuItem{{Name: "메뉴", Price: intPtr(5000)}}, DeliveryDuration: "30분"},
	})
	res := Rank(cat, SearchConstraints{MaxBudget: 6000, MaxTimeMinutes: 60, MealMode: ModeDelivery}, RankGeneral)

	require.Len(t, res.Candidates, 2)
	assert.Equal(t, "첫째", res.Candidates[0].Venue.Name)
	assert.Equal(t, "둘째", res.Candidates[1].Venue.Name)
}

func TestDetail(t *testing.T) {
	v, err := Detail(testCatalog(), "돈까스")
	require.NoError(t, err)
	assert.Equal(t, "돈까스집", v.Name)

	_, err = Detail(testCatalog(), "없는집")
	assert.ErrorIs(t, err, ErrVenueNotFound)
}
