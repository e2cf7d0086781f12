// pkg/messaging/nats.go
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/movegoo/panoramai-sub001/pkg/model"
)

const (
	signalStreamName = "SIGNALS_STREAM"
	signalSubject    = "signals.detected"
)

// NATSClient NATS JetStream客户端，只负责信号流的发布/订阅
type NATSClient struct {
	conn      *nats.Conn
	jetStream jetstream.JetStream
	ctx       context.Context
	cancel    context.CancelFunc
}

// SignalHandler 信号消息处理函数类型
type SignalHandler func(signal *model.Signal) error

// NewNATSClient 创建新的NATS客户端
func NewNATSClient(natsURL string) (*NATSClient, error) {
	// 连接NATS
	nc, err := nats.Connect(natsURL,
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1), // 无限重连
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Printf("NATS连接断开: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Println("NATS重新连接成功")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("连接NATS失败: %w", err)
	}

	// 创建JetStream上下文
	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("创建JetStream失败: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	client := &NATSClient{
		conn:      nc,
		jetStream: js,
		ctx:       ctx,
		cancel:    cancel,
	}

	// 初始化信号Stream
	if err := client.setupStream(); err != nil {
		log.Printf("警告: 设置Stream失败: %v", err)
	}

	return client, nil
}

// setupStream 设置信号Stream
func (c *NATSClient) setupStream() error {
	_, err := c.jetStream.CreateOrUpdateStream(c.ctx, jetstream.StreamConfig{
		Name:        signalStreamName,
		Subjects:    []string{"signals.*"},
		Description: "竞品异动信号数据流",
		Retention:   jetstream.LimitsPolicy,
		MaxMsgs:     50000,
		MaxBytes:    50 * 1024 * 1024,   // 50MB
		MaxAge:      7 * 24 * time.Hour, // 保留7天
	})
	if err != nil {
		return fmt.Errorf("创建/更新Stream %s 失败: %w", signalStreamName, err)
	}
	return nil
}

// PublishSignal 发布信号到信号流，供下游通知服务消费
func (c *NATSClient) PublishSignal(signal *model.Signal) error {
	payload, err := json.Marshal(signal)
	if err != nil {
		return fmt.Errorf("序列化信号失败: %w", err)
	}

	_, err = c.jetStream.Publish(c.ctx, signalSubject, payload)
	if err != nil {
		return fmt.Errorf("发布信号到 %s 失败: %w", signalSubject, err)
	}

	log.Printf("发布信号: %s, 竞品=%s, 程度=%s", signal.ID, signal.CompetitorID, signal.Severity)
	return nil
}

// SubscribeSignals 订阅信号流
func (c *NATSClient) SubscribeSignals(consumerName string, handler SignalHandler) error {
	consumer, err := c.jetStream.CreateOrUpdateConsumer(c.ctx, signalStreamName, jetstream.ConsumerConfig{
		Name:          consumerName,
		Description:   fmt.Sprintf("%s 消费者", consumerName),
		FilterSubject: signalSubject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		DeliverPolicy: jetstream.DeliverNewPolicy,
		ReplayPolicy:  jetstream.ReplayInstantPolicy,
	})
	if err != nil {
		return fmt.Errorf("创建消费者 %s 失败: %w", consumerName, err)
	}

	go c.consumeSignals(consumer, consumerName, handler)

	log.Printf("已订阅 %s (Stream: %s, Consumer: %s)", signalSubject, signalStreamName, consumerName)
	return nil
}

// consumeSignals 消费信号消息
func (c *NATSClient) consumeSignals(consumer jetstream.Consumer, consumerName string, handler SignalHandler) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("消费者 %s 异常退出: %v", consumerName, r)
		}
	}()

	iter, err := consumer.Messages(jetstream.PullMaxMessages(10))
	if err != nil {
		log.Printf("获取 %s 消息迭代器失败: %v", consumerName, err)
		return
	}

	for {
		select {
		case <-c.ctx.Done():
			log.Printf("消费者 %s 收到停止信号", consumerName)
			return
		default:
			msg, err := iter.Next()
			if err != nil {
				if err == jetstream.ErrNoMessages {
					continue
				}
				log.Printf("获取 %s 消息失败: %v", consumerName, err)
				time.Sleep(1 * time.Second)
				continue
			}

			var signal model.Signal
			if err := json.Unmarshal(msg.Data(), &signal); err != nil {
				log.Printf("消费者 %s 解析信号失败: %v", consumerName, err)
				msg.Nak()
				continue
			}

			if err := handler(&signal); err != nil {
				log.Printf("消费者 %s 处理信号失败: %v", consumerName, err)
				msg.Nak() // 拒绝消息
			} else {
				msg.Ack() // 确认消息
			}
		}
	}
}

// IsConnected 检查连接状态
func (c *NATSClient) IsConnected() bool {
	return c.conn != nil && c.conn.IsConnected()
}

// Close 关闭连接
func (c *NATSClient) Close() error {
	log.Println("正在关闭NATS连接...")

	c.cancel() // 取消所有消费上下文

	// 等待消费者退出
	time.Sleep(1 * time.Second)

	if c.conn != nil {
		c.conn.Close()
	}

	log.Println("NATS连接已关闭")
	return nil
}
