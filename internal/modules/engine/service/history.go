package service

import (
	"market_sentry/internal/models"
)

// HistoryStore — скользящая история закрытых свечей по символу.
// Мутируется только из цикла движка, поэтому без локов.
type HistoryStore struct {
	capacity int
	data     map[string][]models.Candle
}

func NewHistoryStore(capacity int) *HistoryStore {
	if capacity < 2 {
		capacity = 2
	}
	return &HistoryStore{
		capacity: capacity,
		data:     make(map[string][]models.Candle),
	}
}

// Append кладёт закрытую свечу в историю символа, вытесняя самую старую
// при переполнении. Свечи с неположительной ценой или объёмом — шум фида,
// молча отбрасываем. Возвращает false, если свеча не записана.
func (s *HistoryStore) Append(symbol string, c models.Candle) bool {
	if c.Close <= 0 || c.Volume <= 0 {
		return false
	}

	hist := append(s.data[symbol], c)
	if len(hist) > s.capacity {
		hist = hist[1:]
	}
	s.data[symbol] = hist
	return true
}

// History отдаёт текущую историю символа. Срез только для чтения.
func (s *HistoryStore) History(symbol string) []models.Candle {
	return s.data[symbol]
}

func (s *HistoryStore) Len(symbol string) int {
	return len(s.data[symbol])
}
