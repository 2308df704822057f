package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Config
const (
	BaseURL    = "http://localhost:8080"
	TotalUsers = 500 // 模拟 500 个用户并发下单
	Quantity   = 1   // 每单买 1 件
)

// ProductID 要抢的商品，需提前进货有限库存（例如 50 件）
// 压测验证成功单数不超过可售数量，且无超卖
const ProductID = 1

var httpClient *http.Client

func init() {
	// 优化 HTTP Client 配置
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 1000
	t.MaxIdleConnsPerHost = 1000
	t.MaxConnsPerHost = 1000
	httpClient = &http.Client{
		Transport: t,
		Timeout:   10 * time.Second,
	}
}

func main() {
	fmt.Printf("开始压测：%d 个用户并发抢购商品 %d...\n", TotalUsers, ProductID)

	var wg sync.WaitGroup
	successCount := 0
	soldOutCount := 0
	failCount := 0
	var mu sync.Mutex

	start := time.Now()

	for i := 1; i <= TotalUsers; i++ {
		wg.Add(1)
		go func(seq int) {
			defer wg.Done()
			placed, soldOut := placeOrder(seq)
			mu.Lock()
			switch {
			case placed:
				successCount++
			case soldOut:
				soldOutCount++
			default:
				failCount++
			}
			mu.Unlock()
		}(i)
	}

	wg.Wait()
	duration := time.Since(start)
	qps := float64(TotalUsers) / duration.Seconds()

	fmt.Println("--------------------------------------------------")
	fmt.Printf("压测结束，耗时: %v\n", duration)
	fmt.Printf("总请求数: %d\n", TotalUsers)
	fmt.Printf("QPS: %.2f\n", qps)
	fmt.Printf("下单成功: %d\n", successCount)
	fmt.Printf("库存不足: %d\n", soldOutCount)
	fmt.Printf("其他失败: %d\n", failCount)
	fmt.Println("--------------------------------------------------")
}

// login 顾客手机号登录（未注册自动建号），返回 token
func login(seq int) (string, error) {
	payload := map[string]interface{}{
		"role":     "customer",
		"phone":    fmt.Sprintf("138%08d", seq),
		"password": "stress-test",
	}
	body, _ := json.Marshal(payload)
	resp, err := httpClient.Post(BaseURL+"/auth/login", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var result struct {
		Code int `json:"code"`
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", err
	}
	if result.Code != 0 || result.Data.Token == "" {
		return "", fmt.Errorf("login failed: %s", string(respBody))
	}
	return result.Data.Token, nil
}

func placeOrder(seq int) (placed, soldOut bool) {
	token, err := login(seq)
	if err != nil {
		return false, false
	}

	payload := map[string]interface{}{
		"items": []map[string]interface{}{
			{"productId": ProductID, "quantity": Quantity},
		},
		"deliveryType": "self",
	}
	body, _ := json.Marshal(payload)
	req, err := http.NewRequest(http.MethodPost, BaseURL+"/orders", bytes.NewBuffer(body))
	if err != nil {
		return false, false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := httpClient.Do(req)
	if err != nil {
		return false, false
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, false
	}

	var result struct {
		Code int `json:"code"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return false, false
	}

	// 20002 为库存不足业务码
	return result.Code == 0, result.Code == 20002
}
