package plot

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DefaultAddr     = "localhost:8080"
	shutdownTimeout = 5 * time.Second
)

// Server 通过HTTP展示图表，直到收到SIGINT或SIGTERM，或ctx被取消
type Server struct {
	addr   string
	chart  Renderer
	logger logrus.FieldLogger
}

func NewServer(addr string, chart Renderer, logger logrus.FieldLogger) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Server{
		addr:   addr,
		chart:  chart,
		logger: logger.WithField("component", "plot-server"),
	}
}

func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "监听%s失败", s.addr)
	}

	server := &http.Server{Handler: s.Handler()}
	errCh := make(chan error, 1)
	go s.serve(server, listener, errCh)
	s.logger.Infof("图表服务器启动，请使用浏览器打开 http://%s/ ，按Ctrl+C退出", listener.Addr())

	// 注册信号接收器
	termSigChan := make(chan os.Signal, 1)
	signal.Notify(termSigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(termSigChan)

	select {
	case <-termSigChan:
	case <-ctx.Done():
	case err := <-errCh:
		return errors.Wrap(err, "HTTP服务出现错误")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "关闭HTTP服务器失败")
	}

	// 等待HTTP服务器结束
	return errors.Wrap(<-errCh, "HTTP关闭出现错误")
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/" {
			http.NotFound(writer, request)
			return
		}

		buf := &bytes.Buffer{}
		if err := s.chart.Render(buf); err != nil {
			s.logger.WithError(err).Error("绘制图表失败")
			http.Error(writer, err.Error(), http.StatusInternalServerError)
			return
		}
		writer.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = writer.Write(buf.Bytes())
	})

	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte("OK"))
	})
	return mux
}

func (s *Server) serve(server *http.Server, listener net.Listener, errCh chan<- error) {
	if err := server.Serve(listener); err != http.ErrServerClosed {
		errCh <- err
		return
	}
	s.logger.Info("图表服务器结束")
	errCh <- nil
}
