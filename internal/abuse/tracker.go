package abuse

import "time"

// TransferTracker 轉讓可疑模式追蹤：每個來源地址保留轉讓發起時間戳，
// 滑動時間窗內達到上限就拒絕新的發起。
// 非並發安全，由 ledger 的互斥鎖保護
type TransferTracker struct {
	window      time.Duration
	limit       int
	initiations map[string][]time.Time
}

func NewTransferTracker(window time.Duration, limit int) *TransferTracker {
	return &TransferTracker{
		window:      window,
		limit:       limit,
		initiations: make(map[string][]time.Time),
	}
}

// Allow 檢查來源地址是否還能發起轉讓
func (t *TransferTracker) Allow(addr string, now time.Time) bool {
	t.prune(addr, now)
	return len(t.initiations[addr]) < t.limit
}

// Record 記錄一次成功的轉讓發起；失敗的嘗試不記錄
func (t *TransferTracker) Record(addr string, now time.Time) {
	t.initiations[addr] = append(t.initiations[addr], now)
}

func (t *TransferTracker) prune(addr string, now time.Time) {
	cutoff := now.Add(-t.window)
	stamps := t.initiations[addr]
	kept := stamps[:0]
	for _, s := range stamps {
		if s.After(cutoff) {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		delete(t.initiations, addr)
		return
	}
	t.initiations[addr] = kept
}

// CountWithin 計算落在滑動時間窗內的時間戳數量。
// 購買限流用它掃描持有票券的發行時間，而不是另外維護計數器
func CountWithin(stamps []time.Time, window time.Duration, now time.Time) int {
	cutoff := now.Add(-window)
	count := 0
	for _, s := range stamps {
		if s.After(cutoff) {
			count++
		}
	}
	return count
}
