package recommend

import (
	"sync"
	"testing"
)

func TestStore_PutGetClear(t *testing.T) {
	s := NewStore()

	if got := s.Get(1); got != nil {
		t.Fatalf("empty store Get = %v, want nil", got)
	}

	rec := &Recommendation{UserID: 1, Situation: "더워요", Routine: "에어컨을 켭니다."}
	s.Put(1, rec)

	if got := s.Get(1); got != rec {
		t.Errorf("Get = %v, want stored recommendation", got)
	}
	if got := s.Get(2); got != nil {
		t.Errorf("Get for other user = %v, want nil", got)
	}

	s.Clear(1)
	if got := s.Get(1); got != nil {
		t.Errorf("Get after Clear = %v, want nil", got)
	}
}

func TestStore_PutOverwrites(t *testing.T) {
	s := NewStore()
	s.Put(1, &Recommendation{UserID: 1, Routine: "first"})
	s.Put(1, &Recommendation{UserID: 1, Routine: "second"})

	if got := s.Get(1); got == nil || got.Routine != "second" {
		t.Errorf("Get = %v, want the second recommendation", got)
	}
}

func TestStore_LockSerializes(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	counter := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := s.Lock(1)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("counter = %d, want 50", counter)
	}
}

func TestStore_LocksAreIndependentPerUser(t *testing.T) {
	s := NewStore()

	unlock1 := s.Lock(1)
	defer unlock1()

	done := make(chan struct{})
	go func() {
		unlock2 := s.Lock(2)
		unlock2()
		close(done)
	}()

	<-done
}
