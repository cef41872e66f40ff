package main

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	json "github.com/bytedance/sonic"

	"gridSheet/contracts"
)

const WebhookWorkersCount = 5

type SheetWebhooks map[string]string

type WebhookSendCommand struct {
	Webhook string
	Cell    *contracts.CellData
}

// WebhookDispatcher fans updated cell snapshots out to subscribed webhook
// urls through a fixed pool of sender workers.
type WebhookDispatcher struct {
	mu       sync.RWMutex
	queue    chan WebhookSendCommand
	webhooks map[string]SheetWebhooks
}

func NewWebhookDispatcher() *WebhookDispatcher {
	return &WebhookDispatcher{
		queue:    make(chan WebhookSendCommand, 20),
		webhooks: map[string]SheetWebhooks{},
	}
}

func (manager *WebhookDispatcher) SetWebhookUrl(sheetId string, canonicalCellId string, webhookUrl string) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if _, ok := manager.webhooks[sheetId]; !ok {
		manager.webhooks[sheetId] = SheetWebhooks{}
	}

	if webhookUrl == "" {
		delete(manager.webhooks[sheetId], canonicalCellId)
	} else {
		manager.webhooks[sheetId][canonicalCellId] = webhookUrl
	}
}

func (manager *WebhookDispatcher) GetWebhookUrl(sheetId string, canonicalCellId string) string {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	if webhook, ok := manager.webhooks[sheetId][canonicalCellId]; ok {
		return webhook
	}

	return ""
}

func (manager *WebhookDispatcher) SubscribedCells(sheetId string) []string {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	cellIds := make([]string, 0, len(manager.webhooks[sheetId]))
	for cellId := range manager.webhooks[sheetId] {
		cellIds = append(cellIds, cellId)
	}

	sort.Strings(cellIds)
	return cellIds
}

func (manager *WebhookDispatcher) Notify(sheetId string, cells []*contracts.CellData) {
	manager.mu.RLock()
	subscribed := len(manager.webhooks[sheetId]) > 0
	manager.mu.RUnlock()

	if !subscribed {
		return
	}

	go manager.addToQueue(sheetId, cells)
}

func (manager *WebhookDispatcher) addToQueue(sheetId string, cells []*contracts.CellData) {
	for _, cell := range cells {
		if webhook := manager.GetWebhookUrl(sheetId, cell.CellId); webhook != "" {
			manager.queue <- WebhookSendCommand{
				Webhook: webhook,
				Cell:    cell,
			}
		}
	}
}

func (manager *WebhookDispatcher) Start() {
	for i := 0; i < WebhookWorkersCount; i++ {
		go manager.runWebhookSenderWorker()
	}
}

func (manager *WebhookDispatcher) Close() {
	close(manager.queue)
}

func (manager *WebhookDispatcher) runWebhookSenderWorker() {
	client := &http.Client{
		Timeout: time.Second * 5,
	}

	var response *http.Response
	var err error

	for command := range manager.queue {
		payload, _ := json.Marshal(command.Cell)
		response, err = client.Post(command.Webhook, "application/json", bytes.NewBuffer(payload))

		if err != nil {
			fmt.Printf("Webhook send error: %s\n", err)
		} else if response.StatusCode >= 300 {
			fmt.Printf("Unexpected webhook response HTTP status: %s\n", response.Status)
		}
	}
}
