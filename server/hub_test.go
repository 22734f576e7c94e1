package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thermal/model"
)

func dial(t *testing.T) *websocket.Conn {
	s := NewServer(":0", websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendSetup(t *testing.T, conn *websocket.Conn, setup model.Setup) {
	content, err := json.Marshal(setup)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(model.Msg{Type: model.MsgSolve, Content: string(content)}))
}

// 读取消息直到出现 typ 类型，返回之前收到的所有消息类型
func readUntil(t *testing.T, conn *websocket.Conn, typ string) (model.Msg, []string) {
	var seen []string
	for {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(20*time.Second)))
		var msg model.Msg
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == typ {
			return msg, seen
		}
		seen = append(seen, msg.Type)
	}
}

func dirichletSetup() model.Setup {
	setup := model.DefaultSetup()
	setup.Solver.Divisions = 5
	setup.Solver.Conductivity = 43
	setup.Solver.Norm = "inf"
	setup.Solver.LogEvery = 0
	hot := model.ConditionCfg{Type: "dirichlet", Temperature: 350}
	setup.Left = hot
	setup.Right = model.ConditionCfg{Type: "robin", H: 5, TInf: 298}
	return setup
}

// 不会收敛的算例，用于测试停止
func endlessSetup() model.Setup {
	setup := dirichletSetup()
	setup.Solver.Divisions = 12
	setup.Solver.Epsilon = 1e-300
	return setup
}

func TestHub_Solve(t *testing.T) {
	conn := dial(t)
	sendSetup(t, conn, dirichletSetup())

	started, _ := readUntil(t, conn, model.MsgStarted)
	assert.Contains(t, started.Content, `"divisions":5`)

	msg, seen := readUntil(t, conn, model.MsgResult)
	for _, typ := range seen {
		assert.Equal(t, model.MsgProgress, typ)
	}
	var res model.SimulationResult
	require.NoError(t, json.Unmarshal([]byte(msg.Content), &res))
	assert.True(t, res.Converged)
	assert.Equal(t, 5, res.Size)
	assert.Equal(t, model.InfinityNorm, res.ErrorDecay.ErrorType)
	last, ok := res.Latest()
	require.True(t, ok)
	assert.Len(t, last.Data, 125)
	assert.Equal(t, 350.0, last.Data[0])
}

func TestHub_Stop(t *testing.T) {
	conn := dial(t)
	sendSetup(t, conn, endlessSetup())
	readUntil(t, conn, model.MsgStarted)

	// 计算过程中再次请求
	sendSetup(t, conn, endlessSetup())
	errMsg, _ := readUntil(t, conn, model.MsgError)
	assert.Contains(t, errMsg.Content, "already running")

	require.NoError(t, conn.WriteJSON(model.Msg{Type: model.MsgStop}))
	msg, _ := readUntil(t, conn, model.MsgStopped)
	var res model.SimulationResult
	require.NoError(t, json.Unmarshal([]byte(msg.Content), &res))
	assert.False(t, res.Converged)

	// 停止后可以重新计算
	sendSetup(t, conn, dirichletSetup())
	readUntil(t, conn, model.MsgStarted)
	readUntil(t, conn, model.MsgResult)
}

func TestHub_Errors(t *testing.T) {
	conn := dial(t)

	require.NoError(t, conn.WriteJSON(model.Msg{Type: "env"}))
	msg, _ := readUntil(t, conn, model.MsgError)
	assert.Contains(t, msg.Content, "no such type")

	require.NoError(t, conn.WriteJSON(model.Msg{Type: model.MsgSolve, Content: "{"}))
	readUntil(t, conn, model.MsgError)

	setup := dirichletSetup()
	setup.Solver.Divisions = 1
	sendSetup(t, conn, setup)
	msg, _ = readUntil(t, conn, model.MsgError)
	assert.Contains(t, msg.Content, "divisions")

	require.NoError(t, conn.WriteJSON(model.Msg{Type: model.MsgStop}))
	msg, _ = readUntil(t, conn, model.MsgStopped)
	assert.Equal(t, "no calculation is running", msg.Content)
}
