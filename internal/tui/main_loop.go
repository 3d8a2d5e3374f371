package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/MKhiriev/go-study-sync/internal/service"
	"github.com/MKhiriev/go-study-sync/models"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

type dashboardScreen int

const (
	screenStatus dashboardScreen = iota
	screenConflicts
	screenResolve
)

const timeLayout = "2006-01-02 15:04"

type mainLoopModel struct {
	ctx      context.Context
	services *service.ClientServices
	userID   int64
	debug    bool

	screen  dashboardScreen
	loading bool
	syncing bool
	status  string
	errMsg  string

	queue       models.QueueStatus
	lastSummary *models.SyncSummary
	conflicts   []models.ConflictRecord
	idx         int
	choiceIdx   int
	resolving   bool

	logout bool
}

type statusLoadedMsg struct {
	queue     models.QueueStatus
	conflicts []models.ConflictRecord
	err       error
}

type syncDoneMsg struct {
	summary models.SyncSummary
}

type resolveDoneMsg struct {
	err error
}

func newMainLoopModel(ctx context.Context, services *service.ClientServices, userID int64) mainLoopModel {
	effectiveUserID := userID
	if effectiveUserID == 0 {
		effectiveUserID = getSessionUserID()
	}
	if effectiveUserID > 0 {
		setSessionUserID(effectiveUserID)
	}

	return mainLoopModel{
		ctx:      ctx,
		services: services,
		userID:   effectiveUserID,
		debug:    isTUIDebugEnabled(),
		loading:  true,
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return m.cmdLoadStatus()
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.queue = msg.queue
		m.conflicts = msg.conflicts
		if m.idx >= len(m.conflicts) {
			m.idx = len(m.conflicts) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		if m.screen == screenResolve && len(m.conflicts) == 0 {
			m.screen = screenConflicts
		}
		return m, nil
	case syncDoneMsg:
		m.syncing = false
		m.lastSummary = &msg.summary
		if !msg.summary.Success {
			m.errMsg = summaryRejectionMessage(msg.summary)
			return m, nil
		}
		m.status = fmt.Sprintf("Синхронизация завершена: отправлено %d, конфликтов %d, ошибок %d",
			msg.summary.SyncedItems, msg.summary.ConflictItems, msg.summary.FailedItems)
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadStatus()
	case resolveDoneMsg:
		m.resolving = false
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Ошибка применения решения: %v", msg.err)
			return m, nil
		}
		m.status = "Решение применено"
		m.errMsg = ""
		m.screen = screenConflicts
		m.loading = true
		return m, m.cmdLoadStatus()
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	}

	switch m.screen {
	case screenConflicts:
		return m.updateConflicts(keyMsg)
	case screenResolve:
		return m.updateResolve(keyMsg)
	default:
		return m.updateStatus(keyMsg)
	}
}

func (m mainLoopModel) updateStatus(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "s":
		if m.syncing {
			return m, nil
		}
		m.syncing = true
		m.status = "Синхронизация..."
		m.errMsg = ""
		return m, m.cmdSync()
	case "r":
		m.loading = true
		return m, m.cmdLoadStatus()
	case "c":
		m.screen = screenConflicts
		m.idx = 0
		m.status = ""
		return m, nil
	case "e":
		if err := clipboard.WriteAll(m.exportText()); err != nil {
			m.errMsg = fmt.Sprintf("Ошибка копирования: %v", err)
			return m, nil
		}
		m.status = "Статус скопирован в буфер обмена"
		return m, nil
	case "l":
		m.logout = true
		clearSessionUserID()
		return m, tea.Quit
	}

	return m, nil
}

func (m mainLoopModel) updateConflicts(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "esc":
		m.screen = screenStatus
		return m, nil
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.conflicts)-1 {
			m.idx++
		}
	case "r":
		m.loading = true
		return m, m.cmdLoadStatus()
	case "enter":
		if _, ok := m.currentConflict(); !ok {
			m.status = "Нет конфликтов"
			return m, nil
		}
		m.choiceIdx = 0
		m.screen = screenResolve
		return m, nil
	}

	return m, nil
}

func (m mainLoopModel) updateResolve(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rec, ok := m.currentConflict()
	if !ok {
		m.screen = screenConflicts
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		m.screen = screenConflicts
		m.errMsg = ""
		return m, nil
	case "up", "k":
		if m.choiceIdx > 0 {
			m.choiceIdx--
		}
	case "down", "j":
		if m.choiceIdx < 2 {
			m.choiceIdx++
		}
	case "1", "2", "3":
		m.choiceIdx = int(keyMsg.String()[0] - '1')
		return m.applyResolution(rec)
	case "enter":
		return m.applyResolution(rec)
	}

	return m, nil
}

func (m mainLoopModel) applyResolution(rec models.ConflictRecord) (tea.Model, tea.Cmd) {
	if m.resolving {
		return m, nil
	}

	resolution := models.ConflictResolution{ItemID: rec.LocalItem.ID}
	switch m.choiceIdx {
	case 0:
		resolution.Resolution = models.ResolutionLocal
	case 1:
		resolution.Resolution = models.ResolutionRemote
	default:
		merged, ok := mergedMissionProgress(rec)
		if !ok {
			m.errMsg = "Объединение недоступно для этой записи"
			return m, nil
		}
		resolution.Resolution = models.ResolutionMerge
		resolution.MergedData = merged
	}

	m.resolving = true
	m.errMsg = ""
	return m, m.cmdResolve(resolution)
}

// mergedMissionProgress builds the merge payload for a mission conflict:
// the furthest progress wins field by field, so neither device loses work.
func mergedMissionProgress(rec models.ConflictRecord) (models.MissionProgress, bool) {
	local, ok := rec.LocalItem.Data.(models.MissionProgress)
	if !ok {
		return models.MissionProgress{}, false
	}

	merged := local
	remote := rec.Remote.Progress
	if remote.Percent > merged.Percent {
		merged.Percent = remote.Percent
	}
	if remote.TasksDone > merged.TasksDone {
		merged.TasksDone = remote.TasksDone
	}
	if remote.TasksTotal > merged.TasksTotal {
		merged.TasksTotal = remote.TasksTotal
	}
	if remote.XPEarned > merged.XPEarned {
		merged.XPEarned = remote.XPEarned
	}
	if merged.CompletedAt == nil {
		merged.CompletedAt = remote.CompletedAt
	}
	return merged, true
}

func (m mainLoopModel) currentConflict() (models.ConflictRecord, bool) {
	if m.idx < 0 || m.idx >= len(m.conflicts) {
		return models.ConflictRecord{}, false
	}
	return m.conflicts[m.idx], true
}

func (m mainLoopModel) View() string {
	switch m.screen {
	case screenConflicts:
		return m.viewConflicts()
	case screenResolve:
		return m.viewResolve()
	default:
		return m.viewStatus()
	}
}

func (m mainLoopModel) viewStatus() string {
	var b strings.Builder

	if m.loading {
		b.WriteString("Загрузка...\n\n")
	}

	b.WriteString("Статус      │ Кол-во\n")
	b.WriteString("────────────┼───────\n")
	b.WriteString(fmt.Sprintf("Ожидает     │ %d\n", m.queue.Pending))
	b.WriteString(fmt.Sprintf("Отправлено  │ %d\n", m.queue.Synced))
	b.WriteString(fmt.Sprintf("Конфликты   │ %d\n", m.queue.Conflicts))
	b.WriteString(fmt.Sprintf("Ошибки      │ %d\n", m.queue.Failed))
	b.WriteString("────────────┼───────\n")
	b.WriteString(fmt.Sprintf("Всего       │ %d\n", m.queue.Total()))

	if m.lastSummary != nil {
		b.WriteString("\nПоследняя синхронизация: ")
		b.WriteString(summaryLine(*m.lastSummary))
		b.WriteString("\n")
		for _, e := range m.lastSummary.Errors {
			b.WriteString("  - ")
			b.WriteString(fitText(e, 70))
			b.WriteString("\n")
		}
	}

	if m.syncing {
		b.WriteString("\n[Синхронизация...]\n")
	}
	if m.status != "" {
		b.WriteString("\nOK: ")
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\nОшибка: ")
		b.WriteString(m.errMsg)
		b.WriteString("\n")
	}

	title := fmt.Sprintf("ОЧЕРЕДЬ СИНХРОНИЗАЦИИ (пользователь %d)", m.activeUserID())
	return renderPage(title, strings.TrimRight(b.String(), "\n"),
		"s: синхронизировать │ c: конфликты │ e: экспорт │ r: обновить │ l: сменить пользователя │ q: выход")
}

func (m mainLoopModel) viewConflicts() string {
	var b strings.Builder

	if len(m.conflicts) == 0 {
		b.WriteString("Конфликтов нет")
		return renderPage("КОНФЛИКТЫ", b.String(), "esc: назад │ r: обновить")
	}

	b.WriteString("    Миссия               │ Локально │ Сервер   │ Обнаружен\n")
	b.WriteString("  ───────────────────────┼──────────┼──────────┼──────────────────\n")
	for i, rec := range m.conflicts {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}

		mission := "-"
		localPct := "-"
		if progress, ok := rec.LocalItem.Data.(models.MissionProgress); ok {
			mission = progress.MissionID
			localPct = fmt.Sprintf("%.1f%%", progress.Percent)
		}
		remotePct := fmt.Sprintf("%.1f%%", rec.Remote.Progress.Percent)

		b.WriteString(fmt.Sprintf("%s %-22s │ %-8s │ %-8s │ %s\n",
			cursor, fitText(mission, 22), localPct, remotePct, rec.DetectedAt.Format(timeLayout)))
		if m.debug {
			b.WriteString(fmt.Sprintf("    запись: %s\n", rec.LocalItem.ID))
		}
	}

	if m.errMsg != "" {
		b.WriteString("\nОшибка: ")
		b.WriteString(m.errMsg)
		b.WriteString("\n")
	}

	return renderPage("КОНФЛИКТЫ", strings.TrimRight(b.String(), "\n"),
		"enter: решить │ ↑/↓: навигация │ r: обновить │ esc: назад")
}

func (m mainLoopModel) viewResolve() string {
	rec, ok := m.currentConflict()
	if !ok {
		return renderPage("РЕШЕНИЕ КОНФЛИКТА", "Конфликт не найден", "esc: назад")
	}

	var b strings.Builder

	b.WriteString("[ ЛОКАЛЬНАЯ ВЕРСИЯ ]\n")
	if progress, ok := rec.LocalItem.Data.(models.MissionProgress); ok {
		writeProgressLines(&b, progress)
	} else {
		b.WriteString("(запись нераспознанного типа)\n")
	}
	b.WriteString("Изменено  : " + rec.LocalItem.Timestamp.Format(timeLayout) + "\n\n")

	b.WriteString("[ СЕРВЕРНАЯ ВЕРСИЯ ]\n")
	writeProgressLines(&b, rec.Remote.Progress)
	b.WriteString("Обновлено : " + rec.Remote.UpdatedAt.Format(timeLayout) + "\n\n")

	b.WriteString("Выберите решение:\n")
	choices := []string{
		"Оставить локальную версию (повторить отправку)",
		"Принять серверную версию",
		"Объединить: максимальный прогресс из обеих версий",
	}
	for i, choice := range choices {
		cursor := " "
		if i == m.choiceIdx {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %d. %s\n", cursor, i+1, choice))
	}

	if m.resolving {
		b.WriteString("\n[Применение...]\n")
	}
	if m.errMsg != "" {
		b.WriteString("\nОшибка: ")
		b.WriteString(m.errMsg)
		b.WriteString("\n")
	}

	title := "РЕШЕНИЕ КОНФЛИКТА"
	if progress, ok := rec.LocalItem.Data.(models.MissionProgress); ok {
		title = "РЕШЕНИЕ КОНФЛИКТА: " + fitText(progress.MissionID, 24)
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"),
		"enter: применить │ 1/2/3: выбрать │ ↑/↓: навигация │ esc: назад")
}

func writeProgressLines(b *strings.Builder, progress models.MissionProgress) {
	b.WriteString(fmt.Sprintf("Прогресс  : %.1f%%\n", progress.Percent))
	b.WriteString(fmt.Sprintf("Задачи    : %d/%d\n", progress.TasksDone, progress.TasksTotal))
	b.WriteString(fmt.Sprintf("XP        : %d\n", progress.XPEarned))
	if progress.CompletedAt != nil {
		b.WriteString("Завершена : " + progress.CompletedAt.Format(timeLayout) + "\n")
	}
}

func (m mainLoopModel) exportText() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Очередь синхронизации (пользователь %d)\n", m.activeUserID()))
	b.WriteString(fmt.Sprintf("ожидает: %d, отправлено: %d, конфликты: %d, ошибки: %d, всего: %d\n",
		m.queue.Pending, m.queue.Synced, m.queue.Conflicts, m.queue.Failed, m.queue.Total()))
	if m.lastSummary != nil {
		b.WriteString("последняя синхронизация: ")
		b.WriteString(summaryLine(*m.lastSummary))
		b.WriteString("\n")
		for _, e := range m.lastSummary.Errors {
			b.WriteString("  - ")
			b.WriteString(e)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func summaryLine(summary models.SyncSummary) string {
	return fmt.Sprintf("отправлено %d, конфликтов %d, ошибок %d",
		summary.SyncedItems, summary.ConflictItems, summary.FailedItems)
}

// summaryRejectionMessage renders a drain that never ran. The reason is in
// Errors; translate the common offline case for the screen.
func summaryRejectionMessage(summary models.SyncSummary) string {
	if len(summary.Errors) == 0 {
		return "синхронизация не выполнена"
	}

	reason := summary.Errors[0]
	if strings.Contains(strings.ToLower(reason), "offline") {
		return "синхронизация не выполнена. Отсутствует сеть или Сервер недоступен"
	}
	return "синхронизация не выполнена: " + reason
}

func (m mainLoopModel) activeUserID() int64 {
	if m.userID > 0 {
		return m.userID
	}
	return getSessionUserID()
}

func (m mainLoopModel) cmdLoadStatus() tea.Cmd {
	ctx := m.ctx
	services := m.services

	return func() tea.Msg {
		queue, err := services.SyncService.GetQueueStatus(ctx)
		if err != nil {
			return statusLoadedMsg{err: err}
		}
		conflicts, err := services.SyncService.Conflicts(ctx)
		if err != nil {
			return statusLoadedMsg{err: err}
		}
		return statusLoadedMsg{queue: queue, conflicts: conflicts}
	}
}

func (m mainLoopModel) cmdSync() tea.Cmd {
	ctx := m.ctx
	services := m.services

	return func() tea.Msg {
		return syncDoneMsg{summary: services.SyncService.ForceSyncNow(ctx)}
	}
}

func (m mainLoopModel) cmdResolve(resolution models.ConflictResolution) tea.Cmd {
	ctx := m.ctx
	services := m.services

	return func() tea.Msg {
		return resolveDoneMsg{err: services.SyncService.ResolveConflicts(ctx, resolution)}
	}
}

func isTUIDebugEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("STUDY_SYNC_TUI_DEBUG"))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
