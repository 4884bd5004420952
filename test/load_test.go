package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	baseURL         = "http://localhost:8080"
	wsURL           = "ws://localhost:8080"
	concurrentUsers = 200
	testDuration    = 30 * time.Second
	apiRampUpTime   = 5 * time.Second
	wsRampUpTime    = 10 * time.Second
)

type stats struct {
	apiRequests     int64
	apiSuccess      int64
	apiFailed       int64
	apiTotalLatency int64
	apiMaxLatency   int64
	wsConnections   int64
	wsSuccess       int64
	wsFailed        int64
	wsMessages      int64
}

var s stats

// main drives a load test against a running crossgen server: repeated
// POST /api/generate calls (the only expensive endpoint — a full DFS
// search) interleaved with health/metrics checks, plus a pool of
// long-lived /api/ws/progress listeners.
func main() {
	fmt.Printf("Starting load test with %d concurrent users for %v\n", concurrentUsers, testDuration)
	fmt.Println("===========================================")

	var wg sync.WaitGroup
	startTime := time.Now()
	stopChan := make(chan struct{})

	fmt.Println("\nPhase 1: /api/generate load testing...")
	for i := 0; i < concurrentUsers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			time.Sleep(time.Duration(id) * apiRampUpTime / concurrentUsers)
			runAPILoadTest(id, stopChan)
		}(i)
	}

	time.Sleep(5 * time.Second)
	fmt.Println("\nPhase 2: /api/ws/progress load testing...")
	for i := 0; i < concurrentUsers/10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			time.Sleep(time.Duration(id) * wsRampUpTime / (concurrentUsers / 10))
			runProgressWsTest(id, stopChan)
		}(i)
	}

	time.Sleep(testDuration)
	close(stopChan)
	wg.Wait()

	elapsed := time.Since(startTime)
	printResults(elapsed)
}

func runAPILoadTest(userID int, stopChan <-chan struct{}) {
	client := &http.Client{Timeout: 10 * time.Second}

	endpoints := []string{"/health", "/metrics", "/api/generate"}

	for {
		select {
		case <-stopChan:
			return
		default:
			for _, endpoint := range endpoints {
				start := time.Now()

				method := "GET"
				if endpoint == "/api/generate" {
					method = "POST"
				}
				req, _ := http.NewRequest(method, baseURL+endpoint, nil)

				atomic.AddInt64(&s.apiRequests, 1)
				resp, err := client.Do(req)
				latency := time.Since(start).Milliseconds()

				if err != nil {
					atomic.AddInt64(&s.apiFailed, 1)
					continue
				}
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()

				if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusAccepted {
					atomic.AddInt64(&s.apiSuccess, 1)
					atomic.AddInt64(&s.apiTotalLatency, latency)
					for {
						oldMax := atomic.LoadInt64(&s.apiMaxLatency)
						if latency <= oldMax || atomic.CompareAndSwapInt64(&s.apiMaxLatency, oldMax, latency) {
							break
						}
					}
				} else {
					atomic.AddInt64(&s.apiFailed, 1)
				}

				time.Sleep(100 * time.Millisecond)
			}
		}
	}
}

func runProgressWsTest(userID int, stopChan <-chan struct{}) {
	atomic.AddInt64(&s.wsConnections, 1)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"/api/ws/progress", nil)
	if err != nil {
		atomic.AddInt64(&s.wsFailed, 1)
		log.Printf("WS user %d: failed to connect: %v", userID, err)
		return
	}
	defer conn.Close()
	atomic.AddInt64(&s.wsSuccess, 1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
			atomic.AddInt64(&s.wsMessages, 1)
		}
	}()

	select {
	case <-stopChan:
	case <-done:
	}
}

func printResults(elapsed time.Duration) {
	fmt.Println("\n===========================================")
	fmt.Println("Load Test Results")
	fmt.Println("===========================================")
	fmt.Printf("Total Duration: %v\n\n", elapsed)

	apiReqs := atomic.LoadInt64(&s.apiRequests)
	apiSucc := atomic.LoadInt64(&s.apiSuccess)
	apiFail := atomic.LoadInt64(&s.apiFailed)
	apiLatency := atomic.LoadInt64(&s.apiTotalLatency)
	apiMaxLat := atomic.LoadInt64(&s.apiMaxLatency)

	fmt.Println("API Endpoints:")
	fmt.Printf("  Total Requests: %d\n", apiReqs)
	if apiReqs > 0 {
		fmt.Printf("  Successful: %d (%.2f%%)\n", apiSucc, float64(apiSucc)/float64(apiReqs)*100)
		fmt.Printf("  Failed: %d (%.2f%%)\n", apiFail, float64(apiFail)/float64(apiReqs)*100)
	}
	if apiSucc > 0 {
		avgLatency := time.Duration(apiLatency/apiSucc) * time.Millisecond
		fmt.Printf("  Avg Latency: %v\n", avgLatency)
		fmt.Printf("  Max Latency: %v\n", time.Duration(apiMaxLat)*time.Millisecond)
		fmt.Printf("  Requests/sec: %.2f\n", float64(apiReqs)/elapsed.Seconds())
	}

	fmt.Println("\nWebSocket Progress Stream:")
	fmt.Printf("  Connections: %d\n", atomic.LoadInt64(&s.wsConnections))
	fmt.Printf("  Successful: %d\n", atomic.LoadInt64(&s.wsSuccess))
	fmt.Printf("  Failed: %d\n", atomic.LoadInt64(&s.wsFailed))
	fmt.Printf("  Messages received: %d\n", atomic.LoadInt64(&s.wsMessages))

	fmt.Println("\n===========================================")
	fmt.Println("Load test completed!")
}
